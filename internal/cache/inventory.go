package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix     = "user:%d"
	QuestionKeyPrefix = "question:%d"
	// QuestionsListKey caches only the default unauthenticated first page.
	QuestionsListKey = "questions:firstpage"
)

const (
	UserTTL     = 5 * time.Minute
	QuestionTTL = 30 * time.Minute
	ListTTL     = 1 * time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func QuestionKey(questionID uint) string {
	return fmt.Sprintf(QuestionKeyPrefix, questionID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

// InvalidateQuestion drops both the question entry and the first-page listing.
func InvalidateQuestion(ctx context.Context, questionID uint) {
	Invalidate(ctx, QuestionKey(questionID))
	Invalidate(ctx, QuestionsListKey)
}

func InvalidateQuestionsList(ctx context.Context) {
	Invalidate(ctx, QuestionsListKey)
}
