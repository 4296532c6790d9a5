package domain

// Level is the severity of a user-facing message
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Message is a status line shown to the person who submitted a form
type Message struct {
	Level Level  `json:"level"`
	Text  string `json:"text"`
}

// Success builds a success message
func Success(text string) Message {
	return Message{Level: LevelSuccess, Text: text}
}

// Error builds an error message
func Error(text string) Message {
	return Message{Level: LevelError, Text: text}
}
