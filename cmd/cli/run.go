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
	"net/url"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var runActor string

var runCmd = &cobra.Command{
	Use:   "run <owner/name>",
	Short: "Start a manual pipeline execution",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		body, err := sonic.Marshal(map[string]string{"actor": runActor})
		if err != nil {
			return err
		}

		target := strings.TrimRight(serverURL, "/") +
			"/api/v1/executions/" + url.PathEscape(args[0])
		resp, err := newClient().R().
			SetHeader("Content-Type", "application/json").
			SetBody(body).
			Post(target)
		if err != nil {
			return err
		}
		if resp.StatusCode() != 200 {
			return errors.Errorf("engine returned status %d: %s", resp.StatusCode(), resp.String())
		}

		var envelope struct {
			Detail struct {
				ExecutionId string `json:"executionId"`
				JobHandle   string `json:"jobHandle"`
				Status      string `json:"status"`
			} `json:"detail"`
		}
		if err := sonic.Unmarshal(resp.Body(), &envelope); err != nil {
			return errors.Wrap(err, "decode execution")
		}
		fmt.Printf("execution: %s\n", envelope.Detail.ExecutionId)
		fmt.Printf("jobHandle: %s\n", envelope.Detail.JobHandle)
		fmt.Printf("status:    %s\n", envelope.Detail.Status)
		return nil
	},
}

func init() {
	runCmd.Flags().StringVar(&runActor, "actor", "", "who is starting the run")
}
