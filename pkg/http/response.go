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

package http

import (
	"github.com/gofiber/fiber/v2"
)

// Status pairs an application code with the HTTP status it maps to.
type Status struct {
	Code       int
	HttpStatus int
	Message    string
}

var (
	OK           = Status{Code: 0, HttpStatus: fiber.StatusOK, Message: "ok"}
	BadRequest   = Status{Code: 40000, HttpStatus: fiber.StatusBadRequest, Message: "bad request"}
	Unauthorized = Status{Code: 40100, HttpStatus: fiber.StatusUnauthorized, Message: "unauthorized"}
	NotFound     = Status{Code: 40400, HttpStatus: fiber.StatusNotFound, Message: "not found"}
	Failed       = Status{Code: 50000, HttpStatus: fiber.StatusInternalServerError, Message: "internal error"}
)

// Response is the uniform JSON envelope for the API.
type Response struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Detail  any    `json:"detail,omitempty"`
	Path    string `json:"path,omitempty"`
}

// WithRep writes a success response with a detail payload.
func WithRep(c *fiber.Ctx, detail any) error {
	return c.Status(OK.HttpStatus).JSON(Response{
		Code:    OK.Code,
		Message: OK.Message,
		Detail:  detail,
	})
}

// WithRepMsg writes a success response carrying only a message.
func WithRepMsg(c *fiber.Ctx, message string) error {
	return c.Status(OK.HttpStatus).JSON(Response{
		Code:    OK.Code,
		Message: message,
	})
}

// WithRepErr writes an error response for the given status.
func WithRepErr(c *fiber.Ctx, status Status, path string) error {
	return c.Status(status.HttpStatus).JSON(Response{
		Code:    status.Code,
		Message: status.Message,
		Path:    path,
	})
}

// WithRepErrMsg writes an error response with an explicit message.
func WithRepErrMsg(c *fiber.Ctx, status Status, message, path string) error {
	return c.Status(status.HttpStatus).JSON(Response{
		Code:    status.Code,
		Message: message,
		Path:    path,
	})
}
