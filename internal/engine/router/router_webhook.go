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

package router

import (
	"github.com/forgegate/forgegate/internal/engine/service"
	"github.com/forgegate/forgegate/pkg/http"
	"github.com/forgegate/forgegate/pkg/webhook"
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
)

func (rt *Router) webhookRouter(r fiber.Router) {
	wh := r.Group("/webhooks")
	{
		wh.Post("/:pipelineId", rt.handleWebhook)
	}
}

func (rt *Router) handleWebhook(c *fiber.Ctx) error {
	pipelineId := c.Params("pipelineId")

	// The raw body backs the HMAC check; re-serializing would break it.
	exec, err := rt.services.Intake.HandleWebhook(
		pipelineId, c.Body(), c.Get(webhook.SignatureHeader))
	switch {
	case err == nil:
		return http.WithRep(c, fiber.Map{
			"executionId": exec.Id,
			"jobHandle":   exec.JobHandle,
		})
	case errors.Is(err, service.ErrIgnoredRef):
		// Authentic delivery, unwatched ref: acknowledged without effect.
		return http.WithRepMsg(c, "ref not watched, delivery ignored")
	case errors.Is(err, service.ErrUnknownPipeline):
		return http.WithRepErr(c, http.NotFound, c.Path())
	case errors.Is(err, service.ErrBadSignature):
		return http.WithRepErrMsg(c, http.Unauthorized, "signature verification failed", c.Path())
	case errors.Is(err, service.ErrMalformedPayload):
		return http.WithRepErrMsg(c, http.BadRequest, err.Error(), c.Path())
	default:
		return http.WithRepErrMsg(c, http.Failed, err.Error(), c.Path())
	}
}
