/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package ai talks to a chat-completion model for layout suggestions.
// Results are proposals only; callers apply them through the builder.
package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Task names the kind of suggestion a prompt asks for.
type Task string

const (
	TaskCaption   Task = "caption"
	TaskPhases    Task = "phases"
	TaskNarrative Task = "narrative"
)

// Prompt is one request to the model. Input carries the JSON payload that
// is also embedded in User.
type Prompt struct {
	Task   Task
	System string
	User   string
	Input  string
}

// Client is a completion backend.
type Client interface {
	Complete(ctx context.Context, p Prompt) (string, error)
}

// Settings select and configure a Client.
type Settings struct {
	Provider string // openai or mock
	Model    string
	APIKey   string
	BaseURL  string
}

// NewClient builds the client named by s.Provider. An empty provider means mock.
func NewClient(s Settings) (Client, error) {
	switch strings.ToLower(strings.TrimSpace(s.Provider)) {
	case "", "mock":
		return MockClient{}, nil
	case "openai":
		return NewOpenAIClient(s)
	}
	return nil, fmt.Errorf("ai provider %q not supported", s.Provider)
}

// ErrEmptyResponse is returned when the model produced no usable content.
var ErrEmptyResponse = errors.New("ai: empty response")
