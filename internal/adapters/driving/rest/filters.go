package rest

import (
	"fmt"
	"math"
	"net/http"
	"runtime/debug"
	"strconv"
	"time"

	"github.com/emicklei/go-restful/v3"
	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/perfecxion/sitesearch/internal/core/domain"
	"github.com/perfecxion/sitesearch/internal/logger"
)

// HeaderRequestID carries the request id. An incoming value is reused.
const HeaderRequestID = "X-Request-ID"

const requestIDAttribute = "requestID"

// requestID tags every request with an id and echoes it in the response.
func requestID(req *restful.Request, resp *restful.Response, chain *restful.FilterChain) {
	id := req.HeaderParameter(HeaderRequestID)
	if id == "" {
		id = uuid.NewString()
	}
	req.SetAttribute(requestIDAttribute, id)
	resp.AddHeader(HeaderRequestID, id)
	chain.ProcessFilter(req, resp)
}

// accessLog logs method, path, status and latency in verbose mode.
func accessLog(req *restful.Request, resp *restful.Response, chain *restful.FilterChain) {
	start := time.Now()
	chain.ProcessFilter(req, resp)
	logger.Debug("%s %s %d %s [%v]",
		req.Request.Method, req.Request.URL.RequestURI(), resp.StatusCode(),
		time.Since(start).Round(time.Microsecond), req.Attribute(requestIDAttribute))
}

// recoverPanic turns a handler panic into a 500.
func recoverPanic(req *restful.Request, resp *restful.Response, chain *restful.FilterChain) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Panic serving %s: %v\n%s", req.Request.URL.Path, r, debug.Stack())
			writeStatus(resp, http.StatusInternalServerError, fmt.Errorf("internal error"))
		}
	}()
	chain.ProcessFilter(req, resp)
}

// rateLimit returns a filter that rejects requests once the bucket is empty.
// A nil limiter disables limiting.
func rateLimit(limiter *rate.Limiter) restful.FilterFunction {
	return func(req *restful.Request, resp *restful.Response, chain *restful.FilterChain) {
		if limiter == nil {
			chain.ProcessFilter(req, resp)
			return
		}

		r := limiter.Reserve()
		if !r.OK() {
			rejectRateLimited(resp, time.Second)
			return
		}
		if delay := r.Delay(); delay > 0 {
			r.Cancel()
			rejectRateLimited(resp, delay)
			return
		}
		chain.ProcessFilter(req, resp)
	}
}

func rejectRateLimited(resp *restful.Response, retryAfter time.Duration) {
	seconds := int(math.Ceil(retryAfter.Seconds()))
	resp.AddHeader("Retry-After", strconv.Itoa(max(seconds, 1)))
	writeStatus(resp, http.StatusTooManyRequests, domain.ErrRateLimited)
}

// newLimiter builds a token bucket. Zero rps disables limiting.
func newLimiter(rps float64, burst int) *rate.Limiter {
	if rps <= 0 {
		return nil
	}
	if burst <= 0 {
		burst = int(math.Ceil(rps))
	}
	return rate.NewLimiter(rate.Limit(rps), burst)
}
