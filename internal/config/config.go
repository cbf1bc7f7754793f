package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort string

	// Jira
	JiraBaseURL           string
	JiraIssueURL          string
	JiraProject           string
	JiraReviewStatus      string
	JiraEmail             string
	JiraPassword          string
	PeerReviewSubtaskType string

	// Slack
	SlackBotToken string
	SlackChannel  string

	// Review workflow
	RequiredReviews int

	// Источник агрегатов: "jira" (пересчет по комментариям) или "cache" (PostgreSQL)
	AggregationSource string

	// PostgreSQL (только для AggregationSource=cache)
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
}

func LoadConfig() (Config, error) {

	err := godotenv.Load()

	return Config{
		ServerPort: getEnv("SERVER_PORT", "3000"),

		JiraBaseURL:           getEnv("JIRA_BASE_URL", "https://jira.example.com"),
		JiraIssueURL:          getEnv("JIRA_ISSUE_URL", "https://jira.example.com/browse"),
		JiraProject:           getEnv("JIRA_PROJECT", "BPY"),
		JiraReviewStatus:      getEnv("JIRA_REVIEW_STATUS", "Code Review"),
		JiraEmail:             getEnv("JIRA_EMAIL", ""),
		JiraPassword:          getEnv("JIRA_PASSWORD", ""),
		PeerReviewSubtaskType: getEnv("PEER_REVIEW_SUBTASK_TYPE", "Peer Review"),

		SlackBotToken: getEnv("SLACK_BOT_TOKEN", ""),
		SlackChannel:  getEnv("SLACK_CHANNEL", "review_bot"),

		RequiredReviews: getEnvInt("REQUIRED_REVIEWS", 2),

		AggregationSource: getEnv("AGGREGATION_SOURCE", "jira"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "password"),
		DBName:     getEnv("DB_NAME", "reviews"),
	}, err
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
