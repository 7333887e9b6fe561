// Copyright 2026 Forgegate Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package service

import (
	"net/url"

	"github.com/forgegate/forgegate/internal/pkg/pipeline"
	"github.com/forgegate/forgegate/pkg/log"
	"github.com/forgegate/forgegate/pkg/metrics"
	"github.com/forgegate/forgegate/pkg/webhook"
	"github.com/pkg/errors"
)

var (
	// ErrUnknownPipeline means the path pipeline id matches no configured pipeline.
	ErrUnknownPipeline = errors.New("intake: unknown pipeline")
	// ErrBadSignature means HMAC verification failed or the header is missing.
	ErrBadSignature = errors.New("intake: signature verification failed")
	// ErrMalformedPayload means the body is not a parseable push event.
	ErrMalformedPayload = errors.New("intake: malformed push payload")
	// ErrIgnoredRef means the push is authentic but targets another branch.
	ErrIgnoredRef = errors.New("intake: ref does not match watched branch")
)

// IntakeService authenticates webhook deliveries and turns qualifying
// pushes into pipeline executions. Verification order is fixed:
// pipeline, signature, payload, ref. A delivery rejected at any step
// starts nothing.
type IntakeService struct {
	conf         *pipeline.Conf
	orchestrator *pipeline.Orchestrator
}

func NewIntakeService(conf *pipeline.Conf, orchestrator *pipeline.Orchestrator) *IntakeService {
	return &IntakeService{
		conf:         conf,
		orchestrator: orchestrator,
	}
}

// HandleWebhook processes one webhook delivery. body is the raw request
// body exactly as received; the HMAC covers every byte of it.
func (is *IntakeService) HandleWebhook(pipelineId string, body []byte, signatureHeader string) (*pipeline.Execution, error) {
	if !is.matchesPipeline(pipelineId) {
		metrics.WebhooksReceived.WithLabelValues("unknown_pipeline").Inc()
		return nil, ErrUnknownPipeline
	}

	if err := webhook.VerifySignature(body, is.conf.SharedSecret, signatureHeader); err != nil {
		metrics.WebhooksReceived.WithLabelValues("rejected").Inc()
		log.Warnw("webhook signature rejected", "pipelineId", pipelineId, "error", err)
		return nil, ErrBadSignature
	}

	event, err := webhook.ParsePush(body)
	if err != nil {
		metrics.WebhooksReceived.WithLabelValues("malformed").Inc()
		log.Warnw("webhook payload unparseable", "pipelineId", pipelineId, "error", err)
		return nil, errors.Wrap(ErrMalformedPayload, err.Error())
	}

	if !event.MatchesBranch(is.conf.Branch) {
		// Authentic but off-branch: acknowledged, nothing started.
		metrics.WebhooksReceived.WithLabelValues("ignored").Inc()
		log.Infow("webhook ignored, ref not watched",
			"pipelineId", pipelineId, "ref", event.Ref, "branch", is.conf.Branch)
		return nil, ErrIgnoredRef
	}

	metrics.WebhooksReceived.WithLabelValues("accepted").Inc()
	exec := is.orchestrator.Start(pipeline.Trigger{
		Kind:      "webhook",
		CommitSha: event.After,
		Actor:     event.Pusher.Name,
	})
	return exec, nil
}

// matchesPipeline compares a path parameter against the configured
// pipeline id. The slash in "owner/name" arrives percent-encoded.
func (is *IntakeService) matchesPipeline(pipelineId string) bool {
	decoded, err := url.PathUnescape(pipelineId)
	if err != nil {
		return false
	}
	return decoded == is.conf.PipelineId()
}
