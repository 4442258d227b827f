// Package queue implements the worker side of a BullMQ-compatible job
// protocol layered on Redis. It never enqueues or schedules jobs; it only
// claims, acknowledges, and requeues them against an externally owned
// key layout.
package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"leadforge-worker/internal/apperrors"
	"leadforge-worker/internal/logging"
	"leadforge-worker/pkg/models"
)

const blockingPopTimeout = 5 * time.Second

// moveToActiveScript atomically claims the next job. It prefers the plain
// wait list (right-pop) and falls back to the lowest-score member of the
// priority sorted set, pushing whichever it finds onto the left of active.
// A set "paused" flag makes the whole move a no-op.
var moveToActiveScript = redis.NewScript(`
if redis.call("EXISTS", KEYS[4]) == 1 then
	return false
end

local id = redis.call("RPOP", KEYS[1])
if not id then
	local lowest = redis.call("ZRANGE", KEYS[2], 0, 0)
	if lowest and #lowest > 0 then
		id = lowest[1]
		redis.call("ZREM", KEYS[2], id)
	end
end

if not id then
	return false
end

redis.call("LPUSH", KEYS[3], id)
return id
`)

// Queue is a handle to one named BullMQ-compatible queue over one Redis
// connection.
type Queue struct {
	client *redis.Client
	name   string
}

// New constructs a Queue bound to the given queue name.
func New(client *redis.Client, name string) *Queue {
	return &Queue{client: client, name: name}
}

func (q *Queue) key(suffix string) string {
	return fmt.Sprintf("bull:%s:%s", q.name, suffix)
}

// FetchNext performs a bounded blocking wait on the marker key, then
// attempts the server-side move-to-active script. It returns (nil, nil)
// on a timed-out wait or a no-op move (queue paused, nothing to claim).
func (q *Queue) FetchNext(ctx context.Context) (*models.BullMQJob, error) {
	waitCtx, cancel := context.WithTimeout(ctx, blockingPopTimeout)
	defer cancel()

	_, err := q.client.BZPopMin(waitCtx, blockingPopTimeout, q.key("marker")).Result()
	if err != nil {
		if err == redis.Nil || err == context.DeadlineExceeded {
			return nil, nil
		}
		return nil, apperrors.Transient("queue: blocking pop on marker failed", err)
	}

	res, err := moveToActiveScript.Run(ctx, q.client,
		[]string{q.key("wait"), q.key("priority"), q.key("active"), q.key("paused")},
	).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, apperrors.Transient("queue: move-to-active script failed", err)
	}

	id, ok := res.(string)
	if !ok || id == "" {
		return nil, nil
	}

	return q.readJob(ctx, id)
}

func (q *Queue) readJob(ctx context.Context, id string) (*models.BullMQJob, error) {
	fields, err := q.client.HGetAll(ctx, q.key(id)).Result()
	if err != nil {
		return nil, apperrors.Transient("queue: failed to read job hash", err)
	}

	return decodeJobFields(id, fields)
}

// decodeJobFields validates and decodes a job hash's fields, independent
// of how they were read. Missing name/data fields, unparsable JSON, or a
// payload with an empty auditSessionId or userId all fail as malformed.
func decodeJobFields(id string, fields map[string]string) (*models.BullMQJob, error) {
	name, hasName := fields["name"]
	dataRaw, hasData := fields["data"]
	if !hasName || !hasData {
		return nil, apperrors.Malformed(fmt.Sprintf("queue: job %s missing name or data field", id), nil)
	}

	var data models.JobData
	if err := json.Unmarshal([]byte(dataRaw), &data); err != nil {
		return nil, apperrors.Malformed(fmt.Sprintf("queue: job %s has unparsable data payload", id), err)
	}
	if data.AuditSessionID == "" || data.UserID == "" {
		return nil, apperrors.Malformed(fmt.Sprintf("queue: job %s payload missing auditSessionId or userId", id), nil)
	}

	return &models.BullMQJob{ID: id, Name: name, Data: data}, nil
}

// Acknowledge marks a job completed: it is removed from active, scored
// into completed by current wall time, and finishedOn is stamped on its
// hash. The three writes are not required to be atomic; at-most-one
// semantics already come from the move-to-active claim.
func (q *Queue) Acknowledge(ctx context.Context, id string) error {
	if err := q.client.LRem(ctx, q.key("active"), 1, id).Err(); err != nil {
		return apperrors.Transient("queue: failed to remove job from active", err)
	}

	now := time.Now().UnixMilli()
	if err := q.client.ZAdd(ctx, q.key("completed"), redis.Z{Score: float64(now), Member: id}).Err(); err != nil {
		return apperrors.Transient("queue: failed to record job as completed", err)
	}

	if err := q.client.HSet(ctx, q.key(id), "finishedOn", now).Err(); err != nil {
		return apperrors.Transient("queue: failed to stamp finishedOn", err)
	}

	return nil
}

// Requeue returns a job to the wait list and wakes any blocked fetcher.
// Used only when a job's name tag does not match this worker's accepted
// tag, so that a correctly tagged worker can claim it instead.
func (q *Queue) Requeue(ctx context.Context, id string) error {
	if err := q.client.LRem(ctx, q.key("active"), 1, id).Err(); err != nil {
		return apperrors.Transient("queue: failed to remove job from active", err)
	}

	if err := q.client.LPush(ctx, q.key("wait"), id).Err(); err != nil {
		return apperrors.Transient("queue: failed to push job back to wait", err)
	}

	if err := q.client.ZAdd(ctx, q.key("marker"), redis.Z{Score: float64(time.Now().UnixMilli()), Member: id}).Err(); err != nil {
		return apperrors.Transient("queue: failed to wake blocked fetchers", err)
	}

	return nil
}

// Connect dials Redis and verifies the connection with a ping, logging
// the outcome the way the rest of the worker reports startup health.
func Connect(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, apperrors.Fatal("queue: cannot connect to redis", err)
	}

	logging.GetGlobalLogger().Info("connected to redis", map[string]interface{}{"addr": addr})
	return client, nil
}
