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
	"github.com/forgegate/forgegate/internal/pkg/gate"
	"github.com/forgegate/forgegate/pkg/http"
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
)

func (rt *Router) gateRouter(r fiber.Router) {
	g := r.Group("/gates")
	{
		g.Put("/:handle", rt.signalGate)
		g.Get("/:handle", rt.getGate)
	}
}

// signalGate accepts a gate signal. Senders set arbitrary or empty
// Content-Type headers, so the handler reads the raw body instead of
// content-negotiated parsing.
func (rt *Router) signalGate(c *fiber.Ctx) error {
	handle := c.Params("handle")

	err := rt.services.Gate.Deliver(handle, c.Body())
	switch {
	case err == nil:
		return http.WithRepMsg(c, "signal accepted")
	case errors.Is(err, gate.ErrUnknownHandle):
		return http.WithRepErr(c, http.NotFound, c.Path())
	case errors.Is(err, service.ErrBadSignal):
		return http.WithRepErrMsg(c, http.BadRequest, err.Error(), c.Path())
	default:
		return http.WithRepErrMsg(c, http.Failed, err.Error(), c.Path())
	}
}

func (rt *Router) getGate(c *fiber.Ctx) error {
	snap, err := rt.services.Gate.Snapshot(c.Params("handle"))
	if err != nil {
		return http.WithRepErr(c, http.NotFound, c.Path())
	}
	return http.WithRep(c, snap)
}
