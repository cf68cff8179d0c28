package dtos

// Counts is rendered as the "_count" object of list and detail items.
type Counts map[string]int64

type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
