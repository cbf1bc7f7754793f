package jira

// Ответы Jira REST API v2 в объеме, который использует клиент.

type searchResponse struct {
	Issues []searchIssue `json:"issues"`
}

type searchIssue struct {
	ID     string      `json:"id"`
	Key    string      `json:"key"`
	Fields issueFields `json:"fields"`
}

type issueFields struct {
	Assignee *assignee      `json:"assignee"`
	Subtasks []subtaskIssue `json:"subtasks"`
}

type assignee struct {
	Key          string `json:"key"`
	Name         string `json:"name"`
	EmailAddress string `json:"emailAddress"`
}

type subtaskIssue struct {
	ID     string        `json:"id"`
	Key    string        `json:"key"`
	Fields subtaskFields `json:"fields"`
}

type subtaskFields struct {
	Status    namedField `json:"status"`
	IssueType namedField `json:"issuetype"`
}

type namedField struct {
	Name string `json:"name"`
}

type commentsResponse struct {
	Comments []comment `json:"comments"`
}

type comment struct {
	Body string `json:"body"`
}

type addCommentRequest struct {
	Body string `json:"body"`
}

type transitionRequest struct {
	Transition transitionRef `json:"transition"`
}

type transitionRef struct {
	ID string `json:"id"`
}
