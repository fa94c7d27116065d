// Package worker implements the pdfgen worker lifecycle and Redis Streams integration.
//
// The worker consumes render requests from a Redis stream, renders them with
// the render package and publishes the HTML (or a classified error) back.
//
// Example usage:
//
//	cfg, _ := config.Load()
//	redisClient := redis.NewClient(&redis.Options{...})
//	renderer := render.NewRenderer(store, engine, logger)
//
//	w := worker.NewWorker(cfg, redisClient, renderer, logger)
//	if err := w.Start(); err != nil {
//	    log.Fatal(err)
//	}
//	defer w.Stop(ctx)
//
// Messages carry the request as JSON in their "data" field:
//
//	XADD pdfgen.render * data '{"app":"sykepenger","template":"soknad","data":{...}}'
//
// Results go to RESULT_STREAM and failures to RESULT_STREAM + ".errors" with a
// "kind" such as "parse" or "missing_field". Messages that cannot be decoded
// are reported as "invalid_request" with their stream message id. Every
// message is acknowledged, and messages left pending by a previous run of the
// same consumer are replayed on Start.
//
// Health checks are provided via a separate HTTP server:
//
//	healthServer := worker.NewHealthServer(8082, redisClient, store, logger)
//	healthServer.Start()
//	defer healthServer.Stop()
package worker
