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

package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/forgegate/forgegate/internal/pkg/gate"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var gateCmd = &cobra.Command{
	Use:   "gate",
	Short: "Inspect deployment gates",
}

var gateStatusCmd = &cobra.Command{
	Use:   "status <handle>",
	Short: "Show a gate's state and recorded signal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		snap, err := fetchGate(args[0])
		if err != nil {
			return err
		}
		printGate(snap)
		return nil
	},
}

var waitInterval time.Duration

var waitCmd = &cobra.Command{
	Use:   "wait <handle>",
	Short: "Block until a gate reaches a terminal state",
	Long: "Poll a gate until it fires or expires. Exits 0 on fired-success, " +
		"non-zero on fired-failure or expiry.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		for {
			snap, err := fetchGate(args[0])
			if err != nil {
				return err
			}
			if snap.State.Terminal() {
				printGate(snap)
				if snap.State.Failed() {
					return errors.Errorf("gate resolved to %s", snap.State)
				}
				return nil
			}
			time.Sleep(waitInterval)
		}
	},
}

func init() {
	gateCmd.AddCommand(gateStatusCmd)
	waitCmd.Flags().DurationVar(&waitInterval, "interval", 5*time.Second, "poll interval")
}

func fetchGate(handle string) (gate.Snapshot, error) {
	var snap gate.Snapshot

	resp, err := newClient().R().
		Get(strings.TrimRight(serverURL, "/") + "/api/v1/gates/" + handle)
	if err != nil {
		return snap, err
	}
	if resp.StatusCode() != 200 {
		return snap, errors.Errorf("engine returned status %d: %s", resp.StatusCode(), resp.String())
	}

	var envelope struct {
		Detail gate.Snapshot `json:"detail"`
	}
	if err := sonic.Unmarshal(resp.Body(), &envelope); err != nil {
		return snap, errors.Wrap(err, "decode gate snapshot")
	}
	return envelope.Detail, nil
}

func printGate(snap gate.Snapshot) {
	fmt.Printf("handle:  %s\n", snap.Handle)
	fmt.Printf("state:   %s\n", snap.State)
	fmt.Printf("created: %s\n", snap.CreatedAt.Format(time.RFC3339))
	if snap.FiredAt != nil {
		fmt.Printf("fired:   %s\n", snap.FiredAt.Format(time.RFC3339))
	}
	if snap.Signal != nil {
		fmt.Printf("signal:  %s %q from %s\n", snap.Signal.Status, snap.Signal.Reason, snap.Signal.UniqueId)
	}
}
