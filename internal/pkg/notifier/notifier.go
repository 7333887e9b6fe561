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

package notifier

import (
	"context"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
	"github.com/forgegate/forgegate/internal/pkg/gate"
	"github.com/forgegate/forgegate/pkg/log"
	"github.com/forgegate/forgegate/pkg/metrics"
	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
)

// FailureType identifies why a notify job is reported failed.
const FailureTypeSignalDelivery = "SignalDeliveryError"

// FailureDetails describes a failed notify job in the report protocol.
type FailureDetails struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

// Reporter is the orchestrator-side half of the bridge: two operations
// keyed by the per-execution job handle.
type Reporter interface {
	ReportSuccess(ctx context.Context, jobHandle string) error
	ReportFailure(ctx context.Context, jobHandle string, details FailureDetails) error
}

// Job is the unit of work handed to the bridge: everything needed to
// signal the gate and to report back to the orchestrator.
type Job struct {
	ExecutionId string
	JobHandle   string
	GateURL     string
	Status      string
	Reason      string
	Data        string
}

// Bridge translates a pipeline outcome into a gate signal and a job
// report. The gate and the orchestrator are two independent
// synchronization mechanisms; each leg has its own error handling and a
// failure in one never swallows the other.
type Bridge struct {
	client   *resty.Client
	reporter Reporter
}

// NewBridge creates a bridge reporting through the given reporter.
func NewBridge(reporter Reporter) *Bridge {
	client := resty.New()
	client.SetTimeout(30 * time.Second)
	// The gate protocol pins a blank Content-Type. resty sniffs the body
	// after request middleware runs, so the header is forced at the last
	// hop before the wire.
	client.SetPreRequestHook(func(_ *resty.Client, req *http.Request) error {
		req.Header.Set("Content-Type", "")
		return nil
	})
	return &Bridge{
		client:   client,
		reporter: reporter,
	}
}

// Notify performs the bridge's two ordered actions: signal the gate, then
// report the job. It never returns an error: the bridge is the last hop
// and nothing downstream can act on one. Both legs capture and log their
// own failures.
func (b *Bridge) Notify(ctx context.Context, job Job) {
	signalErr := b.deliverSignal(ctx, job)
	if signalErr != nil {
		metrics.SignalDeliveries.WithLabelValues("failed").Inc()
		log.Errorw("gate signal delivery failed",
			"executionId", job.ExecutionId, "jobHandle", job.JobHandle, "error", signalErr)
	} else {
		metrics.SignalDeliveries.WithLabelValues("delivered").Inc()
		log.Infow("gate signal delivered",
			"executionId", job.ExecutionId, "jobHandle", job.JobHandle, "status", job.Status)
	}

	// The report leg runs regardless of how the signal leg went.
	var reportErr error
	if signalErr == nil {
		reportErr = b.reporter.ReportSuccess(ctx, job.JobHandle)
	} else {
		reportErr = b.reporter.ReportFailure(ctx, job.JobHandle, FailureDetails{
			Message: signalErr.Error(),
			Type:    FailureTypeSignalDelivery,
		})
	}
	if reportErr != nil {
		log.Errorw("job report failed",
			"executionId", job.ExecutionId, "jobHandle", job.JobHandle, "error", reportErr)
	}
}

// deliverSignal PUTs the signal payload to the gate handle URL. Any 2xx
// response counts as delivered; everything else is a delivery error.
func (b *Bridge) deliverSignal(ctx context.Context, job Job) error {
	if job.GateURL == "" {
		return errors.New("notifier: gate URL is empty")
	}

	body, err := sonic.Marshal(gate.Signal{
		Status:   job.Status,
		Reason:   job.Reason,
		UniqueId: job.JobHandle,
		Data:     job.Data,
	})
	if err != nil {
		return errors.Wrap(err, "notifier: marshal signal")
	}

	resp, err := b.client.R().
		SetContext(ctx).
		SetBody(body).
		Put(job.GateURL)
	if err != nil {
		return errors.Wrap(err, "notifier: put gate signal")
	}
	if resp.StatusCode() < 200 || resp.StatusCode() > 299 {
		return errors.Errorf("notifier: gate returned status %d: %s",
			resp.StatusCode(), resp.String())
	}
	return nil
}
