package tasks

import (
	"testing"

	"github.com/lysyi3m/app-comb/app/review"
)

func TestNewTask(t *testing.T) {
	task := NewTask(TaskTypeReview, "1234")

	if task.GetID() == "" {
		t.Error("Expected generated task id")
	}
	if task.GetType() != TaskTypeReview {
		t.Errorf("Expected review type, got %s", task.GetType())
	}
	if task.GetSubject() != "1234" {
		t.Errorf("Expected subject 1234, got %s", task.GetSubject())
	}
	if task.GetRetryCount() != 0 {
		t.Errorf("Expected zero retries, got %d", task.GetRetryCount())
	}
	if task.GetMaxRetries() != DefaultMaxRetries {
		t.Errorf("Expected default max retries, got %d", task.GetMaxRetries())
	}
}

func TestTask_UniqueIDs(t *testing.T) {
	a := NewTask(TaskTypeReview, "1")
	b := NewTask(TaskTypeReview, "1")

	if a.GetID() == b.GetID() {
		t.Errorf("Expected unique task ids, both got %s", a.GetID())
	}
}

func TestTask_RetryLogic(t *testing.T) {
	task := NewTask(TaskTypeLinkCheck, "dataset")
	task.MaxRetries = 2

	if !task.CanRetry() {
		t.Error("Expected retry allowed before any attempt")
	}

	task.IncrementRetryCount()
	if !task.CanRetry() {
		t.Error("Expected retry allowed after first attempt")
	}

	task.IncrementRetryCount()
	if task.CanRetry() {
		t.Error("Expected no retry after max retries")
	}
	if task.GetRetryCount() != 2 {
		t.Errorf("Expected retry count 2, got %d", task.GetRetryCount())
	}
}

func TestTask_Duration(t *testing.T) {
	task := NewTask(TaskTypeReview, "1")

	if task.GetDuration() != 0 {
		t.Errorf("Expected zero duration before start, got %v", task.GetDuration())
	}

	task.Start()
	if task.GetDuration() < 0 {
		t.Errorf("Expected non-negative duration, got %v", task.GetDuration())
	}
}

func TestNewReviewTask_RetriesOnce(t *testing.T) {
	task := NewReviewTask(nil, review.Request{IssueNumber: 1234})

	if task.GetType() != TaskTypeReview {
		t.Errorf("Expected review type, got %s", task.GetType())
	}
	if task.GetSubject() != "1234" {
		t.Errorf("Expected issue number as subject, got %s", task.GetSubject())
	}
	if task.GetMaxRetries() != 1 {
		t.Errorf("Expected single retry for review tasks, got %d", task.GetMaxRetries())
	}
}
