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
	"strings"

	"github.com/forgegate/forgegate/internal/engine/service"
	"github.com/forgegate/forgegate/internal/pkg/pipeline"
	"github.com/forgegate/forgegate/pkg/http"
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
)

func (rt *Router) executionRouter(r fiber.Router) {
	ex := r.Group("/executions")
	{
		ex.Post("/:pipelineId", rt.startExecution)
		ex.Get("/:id", rt.getExecution)
	}
}

func (rt *Router) startExecution(c *fiber.Ctx) error {
	var req struct {
		Actor string `json:"actor"`
	}
	// The body is optional; a bare POST starts an anonymous run.
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return http.WithRepErrMsg(c, http.BadRequest, "request body is not valid JSON", c.Path())
		}
	}

	exec, err := rt.services.Execution.Start(c.Params("pipelineId"), strings.TrimSpace(req.Actor))
	if err != nil {
		if errors.Is(err, service.ErrUnknownPipeline) {
			return http.WithRepErr(c, http.NotFound, c.Path())
		}
		return http.WithRepErrMsg(c, http.Failed, err.Error(), c.Path())
	}
	return http.WithRep(c, fiber.Map{
		"executionId": exec.Id,
		"jobHandle":   exec.JobHandle,
		"status":      exec.Status,
	})
}

func (rt *Router) getExecution(c *fiber.Ctx) error {
	exec, err := rt.services.Execution.Get(c.Params("id"))
	if err != nil {
		if errors.Is(err, pipeline.ErrNotFound) {
			return http.WithRepErr(c, http.NotFound, c.Path())
		}
		return http.WithRepErrMsg(c, http.Failed, err.Error(), c.Path())
	}
	return http.WithRep(c, exec)
}
