package domain

// Message board limits
const (
	MaxMessageTextRunes = 500
	MaxMessageNameRunes = 50
)

// Message is a guestbook note. Time is epoch milliseconds.
type Message struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Text string `json:"text"`
	Time int64  `json:"time"`
}

// OKResponse is the body returned by admin deletes
type OKResponse struct {
	OK bool `json:"ok"`
}
