// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// Question is a posted question together with its denormalized counters.
//
// NumAnswers mirrors the count of Answer rows whose QuestionID references this
// question. It is maintained by incremental updates on answer creation rather
// than recomputation, so it can drift if the answer insert succeeds and the
// increment does not. ReconcileCounters repairs it on demand.
type Question struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Title   string `gorm:"not null" json:"title"`
	Content string `gorm:"type:text;not null" json:"content"`
	UserID  uint   `gorm:"not null;index" json:"user_id"`
	User    User   `gorm:"foreignKey:UserID" json:"user"`

	// Tags are derived from a whitespace-delimited input string at create/edit time.
	Tags []string `gorm:"serializer:json" json:"tags"`

	NumReads   int `gorm:"not null;default:0" json:"num_reads"`
	NumAnswers int `gorm:"not null;default:0" json:"num_answers"`

	// Event metadata. Opaque pass-through strings, no cross-field validation.
	Location      string `json:"location"`
	StartDate     string `json:"start_date"`
	StartTime     string `json:"start_time"`
	EndDate       string `json:"end_date"`
	EndTime       string `json:"end_time"`
	GroupName     string `json:"group_name"`
	GroupDetails  string `json:"group_details"`
	EventType     string `json:"event_type"`
	EventCategory string `json:"event_category"`
	Free          string `json:"free"`
	Charged       string `json:"charged"`
	Price         string `json:"price"`
	ImageURL      string `json:"image_url"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// Counter field names accepted by QuestionRepository.Increment.
const (
	CounterReads   = "num_reads"
	CounterAnswers = "num_answers"
)
