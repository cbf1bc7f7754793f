package main

import (
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"net/url"
	"time"

	vegeta "github.com/tsenart/vegeta/v12/lib"
)

const (
	targetHost = "http://localhost:3000"
	rps        = 5
	duration   = 1 * time.Minute
)

// Нагрузочный сценарий: поток слэш-команд листинга и интерактивных
// откликов от множества пользователей. Ожидается внешний mock ответов
// response_url (например, локальный echo-сервер на 9999).
func main() {
	targeter := func(tgt *vegeta.Target) error {
		if tgt == nil {
			return vegeta.ErrNilTarget
		}

		user := fmt.Sprintf("U%03d", rand.Intn(200))

		switch rand.Intn(3) {
		case 0:
			form := url.Values{
				"user_id":      {user},
				"user_name":    {"load-" + user},
				"response_url": {"http://localhost:9999/response"},
			}
			tgt.Method = http.MethodPost
			tgt.URL = targetHost + "/commands/needs-review"
			tgt.Body = []byte(form.Encode())
		case 1:
			form := url.Values{
				"user_id":      {user},
				"user_name":    {"load-" + user},
				"text":         {"load test review comment"},
				"response_url": {"http://localhost:9999/response"},
			}
			tgt.Method = http.MethodPost
			tgt.URL = targetHost + "/commands/new-review"
			tgt.Body = []byte(form.Encode())
		default:
			payload := fmt.Sprintf(
				`{"type":"interactive_message","user":{"id":%q,"name":"load-%s"},"actions":[{"name":"cancel","value":"cancel"}],"response_url":"http://localhost:9999/response"}`,
				user, user,
			)
			form := url.Values{"payload": {payload}}
			tgt.Method = http.MethodPost
			tgt.URL = targetHost + "/interaction"
			tgt.Body = []byte(form.Encode())
		}

		tgt.Header = http.Header{
			"Content-Type": []string{"application/x-www-form-urlencoded"},
		}
		return nil
	}

	attacker := vegeta.NewAttacker()
	rate := vegeta.Rate{Freq: rps, Per: time.Second}

	log.Printf("Attacking %s at %d rps for %s", targetHost, rps, duration)

	var metrics vegeta.Metrics
	for res := range attacker.Attack(targeter, rate, duration, "review-bot") {
		metrics.Add(res)
	}
	metrics.Close()

	log.Printf("Requests: %d", metrics.Requests)
	log.Printf("Success rate: %.2f%%", metrics.Success*100)
	log.Printf("Latency p50: %s", metrics.Latencies.P50)
	log.Printf("Latency p95: %s", metrics.Latencies.P95)
	log.Printf("Latency p99: %s", metrics.Latencies.P99)
	if len(metrics.Errors) > 0 {
		log.Printf("Errors: %v", metrics.Errors)
	}
}
