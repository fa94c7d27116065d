package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aescanero/dago-node-pdfgen/internal/config"
	"github.com/aescanero/dago-node-pdfgen/internal/render"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// messageTimeout bounds the render, publish and ack of one message. Messages
// run on a context detached from the worker so that Stop lets them finish.
const messageTimeout = 30 * time.Second

// Renderer renders a single request
type Renderer interface {
	Render(ctx context.Context, req *render.Request) (*render.Result, error)
}

// StreamClient is the subset of the Redis client the worker uses
type StreamClient interface {
	XGroupCreateMkStream(ctx context.Context, stream, group, start string) *redis.StatusCmd
	XReadGroup(ctx context.Context, a *redis.XReadGroupArgs) *redis.XStreamSliceCmd
	XAdd(ctx context.Context, a *redis.XAddArgs) *redis.StringCmd
	XAck(ctx context.Context, stream, group string, ids ...string) *redis.IntCmd
}

// Worker represents the pdfgen render worker
type Worker struct {
	id            string
	config        *config.Config
	redisClient   StreamClient
	renderer      Renderer
	logger        *zap.Logger
	ctx           context.Context
	cancel        context.CancelFunc
	done          chan struct{}
	streamKey     string
	consumerGroup string
	resultStream  string
}

// NewWorker creates a new worker
func NewWorker(
	cfg *config.Config,
	redisClient StreamClient,
	renderer Renderer,
	logger *zap.Logger,
) *Worker {
	ctx, cancel := context.WithCancel(context.Background())

	return &Worker{
		id:            cfg.WorkerID,
		config:        cfg,
		redisClient:   redisClient,
		renderer:      renderer,
		logger:        logger,
		ctx:           ctx,
		cancel:        cancel,
		done:          make(chan struct{}),
		streamKey:     cfg.StreamKey,
		consumerGroup: cfg.ConsumerGroup,
		resultStream:  cfg.ResultStream,
	}
}

// Start starts the worker
func (w *Worker) Start() error {
	w.logger.Info("starting pdfgen worker",
		zap.String("worker_id", w.id),
		zap.String("stream_key", w.streamKey),
		zap.String("consumer_group", w.consumerGroup),
	)

	// Create consumer group if it doesn't exist
	if err := w.ensureConsumerGroup(); err != nil {
		return fmt.Errorf("failed to ensure consumer group: %w", err)
	}

	// Start processing work
	go w.processWork()

	w.logger.Info("pdfgen worker started", zap.String("worker_id", w.id))
	return nil
}

// Stop stops reading new messages and waits for the in-flight message to be
// rendered, published and acknowledged
func (w *Worker) Stop(ctx context.Context) error {
	w.logger.Info("stopping pdfgen worker", zap.String("worker_id", w.id))

	w.cancel()

	select {
	case <-w.done:
	case <-ctx.Done():
		return fmt.Errorf("worker did not stop in time: %w", ctx.Err())
	}

	w.logger.Info("pdfgen worker stopped", zap.String("worker_id", w.id))
	return nil
}

// ensureConsumerGroup creates the consumer group if it doesn't exist
func (w *Worker) ensureConsumerGroup() error {
	err := w.redisClient.XGroupCreateMkStream(w.ctx, w.streamKey, w.consumerGroup, "0").Err()
	if err != nil {
		// BUSYGROUP error means the group already exists, which is fine
		if err.Error() == "BUSYGROUP Consumer Group name already exists" {
			w.logger.Debug("consumer group already exists",
				zap.String("group", w.consumerGroup),
			)
			return nil
		}
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	w.logger.Info("created consumer group",
		zap.String("group", w.consumerGroup),
		zap.String("stream", w.streamKey),
	)
	return nil
}

// processWork processes work from the Redis stream
func (w *Worker) processWork() {
	defer close(w.done)
	w.logger.Info("starting work processing loop")

	w.processPending()

	for {
		select {
		case <-w.ctx.Done():
			w.logger.Info("work processing loop stopped")
			return
		default:
			streams, err := w.redisClient.XReadGroup(w.ctx, &redis.XReadGroupArgs{
				Group:    w.consumerGroup,
				Consumer: w.id,
				Streams:  []string{w.streamKey, ">"},
				Count:    1,
				Block:    w.config.BlockTime,
			}).Result()

			if err != nil {
				if errors.Is(err, redis.Nil) || errors.Is(err, context.Canceled) {
					continue
				}
				w.logger.Error("failed to read from stream",
					zap.Error(err),
				)
				time.Sleep(time.Second)
				continue
			}

			for _, stream := range streams {
				for _, message := range stream.Messages {
					w.handleMessage(message)
				}
			}
		}
	}
}

// processPending replays messages delivered to this consumer before a restart
// but never acknowledged
func (w *Worker) processPending() {
	start := "0"
	for w.ctx.Err() == nil {
		streams, err := w.redisClient.XReadGroup(w.ctx, &redis.XReadGroupArgs{
			Group:    w.consumerGroup,
			Consumer: w.id,
			Streams:  []string{w.streamKey, start},
			Count:    10,
			Block:    -1,
		}).Result()
		if err != nil {
			if !errors.Is(err, redis.Nil) && !errors.Is(err, context.Canceled) {
				w.logger.Error("failed to read pending messages", zap.Error(err))
			}
			return
		}

		handled := 0
		for _, stream := range streams {
			for _, message := range stream.Messages {
				w.handleMessage(message)
				start = message.ID
				handled++
			}
		}
		if handled == 0 {
			return
		}
		w.logger.Info("replayed pending messages", zap.Int("count", handled))
	}
}

// handleMessage handles a single render request message
func (w *Worker) handleMessage(message redis.XMessage) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(w.ctx), messageTimeout)
	defer cancel()

	messageID := message.ID
	w.logger.Info("processing render request",
		zap.String("message_id", messageID),
	)

	request, err := parseRenderRequest(message.Values)
	if err != nil {
		w.logger.Error("failed to parse render request",
			zap.String("message_id", messageID),
			zap.Error(err),
		)
		w.publishError(ctx, errorEvent(messageID, nil, err))
		w.acknowledgeMessage(ctx, messageID)
		return
	}

	result, err := w.renderer.Render(ctx, request)
	if err != nil {
		w.logger.Error("failed to render document",
			zap.String("message_id", messageID),
			zap.String("id", request.ID),
			zap.Error(err),
		)
		w.publishError(ctx, errorEvent(messageID, request, err))
	} else if err := w.publishResult(ctx, result); err != nil {
		w.logger.Error("failed to publish result",
			zap.String("id", request.ID),
			zap.Error(err),
		)
	}

	w.acknowledgeMessage(ctx, messageID)
}

// parseRenderRequest parses a render request from a Redis message and assigns an id when missing
func parseRenderRequest(values map[string]interface{}) (*render.Request, error) {
	dataStr, ok := values["data"].(string)
	if !ok {
		return nil, fmt.Errorf("%w: missing or invalid 'data' field", render.ErrInvalidRequest)
	}

	var request render.Request
	if err := json.Unmarshal([]byte(dataStr), &request); err != nil {
		return nil, fmt.Errorf("%w: failed to unmarshal render request: %v", render.ErrInvalidRequest, err)
	}

	if request.ID == "" {
		request.ID = uuid.NewString()
	}

	return &request, nil
}

// publishResult publishes the rendered document
func (w *Worker) publishResult(ctx context.Context, result *render.Result) error {
	event := map[string]interface{}{
		"id":          result.ID,
		"app":         result.App,
		"template":    result.Template,
		"html":        result.HTML,
		"duration_ms": result.Duration.Milliseconds(),
		"timestamp":   time.Now().UTC(),
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}

	_, err = w.redisClient.XAdd(ctx, &redis.XAddArgs{
		Stream: w.resultStream,
		Values: map[string]interface{}{
			"data": string(data),
		},
	}).Result()

	if err != nil {
		return fmt.Errorf("failed to publish to stream: %w", err)
	}

	w.logger.Info("published rendered document",
		zap.String("id", result.ID),
		zap.String("app", result.App),
		zap.String("template", result.Template),
	)

	return nil
}

// errorEvent builds the payload published for a failed message. request is
// nil when the message could not be parsed.
func errorEvent(messageID string, request *render.Request, err error) map[string]interface{} {
	event := map[string]interface{}{
		"message_id": messageID,
		"kind":       string(render.Classify(err)),
		"error":      err.Error(),
		"timestamp":  time.Now().UTC(),
	}
	if request != nil {
		event["id"] = request.ID
		event["app"] = request.App
		event["template"] = request.Template
	}
	return event
}

// publishError publishes an error event
func (w *Worker) publishError(ctx context.Context, event map[string]interface{}) {
	data, marshalErr := json.Marshal(event)
	if marshalErr != nil {
		w.logger.Error("failed to marshal error event", zap.Error(marshalErr))
		return
	}

	// Publish error to a separate stream
	_, publishErr := w.redisClient.XAdd(ctx, &redis.XAddArgs{
		Stream: w.errorStream(),
		Values: map[string]interface{}{
			"data": string(data),
		},
	}).Result()

	if publishErr != nil {
		w.logger.Error("failed to publish error event", zap.Error(publishErr))
	}
}

// errorStream is the stream failed messages are reported on
func (w *Worker) errorStream() string {
	return w.resultStream + ".errors"
}

// acknowledgeMessage acknowledges a message from the stream
func (w *Worker) acknowledgeMessage(ctx context.Context, messageID string) {
	err := w.redisClient.XAck(ctx, w.streamKey, w.consumerGroup, messageID).Err()
	if err != nil {
		w.logger.Error("failed to acknowledge message",
			zap.String("message_id", messageID),
			zap.Error(err),
		)
	}
}
