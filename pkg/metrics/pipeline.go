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

package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// ExecutionsStarted counts pipeline executions by trigger kind.
	ExecutionsStarted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "forgegate_executions_started_total",
			Help: "Pipeline executions started, by trigger.",
		},
		[]string{"trigger"},
	)

	// StageCompleted counts stage outcomes.
	StageCompleted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "forgegate_stage_completed_total",
			Help: "Pipeline stage completions, by stage and status.",
		},
		[]string{"stage", "status"},
	)

	// GateTransitions counts gate state transitions.
	GateTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "forgegate_gate_transitions_total",
			Help: "Completion gate transitions, by terminal state.",
		},
		[]string{"state"},
	)

	// SignalDeliveries counts notifier bridge signal attempts.
	SignalDeliveries = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "forgegate_signal_deliveries_total",
			Help: "Gate signal delivery attempts from the notifier bridge, by outcome.",
		},
		[]string{"outcome"},
	)

	// WebhooksReceived counts intake decisions.
	WebhooksReceived = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "forgegate_webhooks_received_total",
			Help: "Webhook notifications received, by intake decision.",
		},
		[]string{"decision"},
	)
)

// RegisterPipelineMetrics registers domain collectors on the registry.
func RegisterPipelineMetrics(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{
		ExecutionsStarted,
		StageCompleted,
		GateTransitions,
		SignalDeliveries,
		WebhooksReceived,
	} {
		if err := reg.Register(c); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
				return err
			}
		}
	}
	return nil
}
