package domain

// SecuritySettings is the single process-wide admin secret plus an optional
// recovery question/answer pair. Stored in plaintext on purpose: password
// recovery reveals the current password to whoever answers the question.
type SecuritySettings struct {
	Password string `json:"password"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}
