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
	"net/http"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/forgegate/forgegate/internal/pkg/gate"
	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var (
	signalStatus   string
	signalReason   string
	signalUniqueId string
	signalData     string
)

var signalCmd = &cobra.Command{
	Use:   "signal <handle-or-url>",
	Short: "Deliver a completion signal to a gate",
	Long: "Deliver a completion signal to a gate. The argument is either a " +
		"bare gate handle (resolved against --server) or a full signal URL.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sig := gate.Signal{
			Status:   strings.ToUpper(signalStatus),
			Reason:   signalReason,
			UniqueId: signalUniqueId,
			Data:     signalData,
		}
		if !sig.Valid() {
			return errors.Errorf("status must be SUCCESS or FAILURE, got %q", signalStatus)
		}
		if sig.UniqueId == "" {
			return errors.New("--unique-id is required")
		}

		body, err := sonic.Marshal(sig)
		if err != nil {
			return err
		}

		// Same wire behavior as the in-process bridge: raw PUT, blank
		// Content-Type.
		resp, err := newClient().R().
			SetBody(body).
			Put(signalURL(args[0]))
		if err != nil {
			return err
		}
		if resp.StatusCode() < 200 || resp.StatusCode() > 299 {
			return errors.Errorf("gate returned status %d: %s", resp.StatusCode(), resp.String())
		}
		fmt.Printf("signal %s delivered (%d)\n", sig.Status, resp.StatusCode())
		return nil
	},
}

func init() {
	signalCmd.Flags().StringVar(&signalStatus, "status", "SUCCESS", "signal status: SUCCESS or FAILURE")
	signalCmd.Flags().StringVar(&signalReason, "reason", "", "human-readable reason")
	signalCmd.Flags().StringVar(&signalUniqueId, "unique-id", "", "sender identity for the signal")
	signalCmd.Flags().StringVar(&signalData, "data", "", "opaque signal payload")
}

func newClient() *resty.Client {
	client := resty.New()
	client.SetTimeout(30 * time.Second)
	// Blank the Content-Type after resty's body sniffing, matching the
	// gate signal protocol.
	client.SetPreRequestHook(func(_ *resty.Client, req *http.Request) error {
		req.Header.Set("Content-Type", "")
		return nil
	})
	return client
}

func signalURL(arg string) string {
	if strings.HasPrefix(arg, "http://") || strings.HasPrefix(arg, "https://") {
		return arg
	}
	return strings.TrimRight(serverURL, "/") + "/api/v1/gates/" + arg
}
