package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
)

// FailedJobRecord is the document persisted to the failed_jobs collection.
type FailedJobRecord struct {
	JobType  string    `bson:"job_type"`
	Payload  string    `bson:"payload"`
	Error    string    `bson:"error"`
	Attempts int       `bson:"attempts"`
	FailedAt time.Time `bson:"failed_at"`
}

// failedJobColl is the optional Mongo backend for persisting failed jobs.
// Set via UseCollection() — nil means in-memory only.
var failedJobColl *mongo.Collection

// UseCollection configures the queue to persist failed jobs to MongoDB.
// Call once at boot, after database.Connect():
//
//	queue.UseCollection(database.Collection("failed_jobs"))
func UseCollection(coll *mongo.Collection) {
	failedJobColl = coll
}

// persistFailed records an exhausted job in memory and, when a collection
// is configured, in MongoDB.
func (m *Manager) persistFailed(job Job, typeName string, lastErr error, attempts int) {
	m.mu.Lock()
	m.failed = append(m.failed, FailedJob{
		Job: job, Err: lastErr, FailedAt: time.Now(), Attempts: attempts,
	})
	m.mu.Unlock()

	if failedJobColl == nil {
		return
	}

	payload, err := json.Marshal(job)
	if err != nil {
		payload = []byte(fmt.Sprintf(`{"error": "could not marshal: %v"}`, err))
	}

	record := FailedJobRecord{
		JobType:  typeName,
		Payload:  string(payload),
		Error:    lastErr.Error(),
		Attempts: attempts,
		FailedAt: time.Now(),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := failedJobColl.InsertOne(ctx, record); err != nil {
		// Non-fatal, the in-memory slice still has it.
		fmt.Printf("queue: failed to persist failed job %s: %v\n", typeName, err)
	}
}
