package webhook

import (
	"fmt"
	"strings"

	"github.com/bytedance/sonic"
)

// PushEvent is the subset of a push notification the intake acts on.
type PushEvent struct {
	Ref        string     `json:"ref"`
	After      string     `json:"after,omitempty"`
	Repository Repository `json:"repository"`
	Pusher     Pusher     `json:"pusher,omitempty"`
}

// Repository identifies the source repository of a push.
type Repository struct {
	Name  string `json:"name"`
	Owner Owner  `json:"owner"`
}

type Owner struct {
	Name  string `json:"name,omitempty"`
	Login string `json:"login,omitempty"`
}

// OwnerName returns the owner regardless of which field the sender filled.
func (r Repository) OwnerName() string {
	if r.Owner.Name != "" {
		return r.Owner.Name
	}
	return r.Owner.Login
}

type Pusher struct {
	Name string `json:"name,omitempty"`
}

// ParsePush decodes a push notification payload.
func ParsePush(body []byte) (*PushEvent, error) {
	var ev PushEvent
	if err := sonic.Unmarshal(body, &ev); err != nil {
		return nil, fmt.Errorf("parse push payload: %w", err)
	}
	if ev.Ref == "" {
		return nil, fmt.Errorf("push payload has no ref")
	}
	return &ev, nil
}

// BranchRef returns the fully qualified ref for a branch name.
func BranchRef(branch string) string {
	return "refs/heads/" + branch
}

// MatchesBranch reports whether the event targets the given branch.
func (e *PushEvent) MatchesBranch(branch string) bool {
	return e.Ref == BranchRef(branch)
}

// Branch returns the branch name for branch refs, or "" otherwise.
func (e *PushEvent) Branch() string {
	if strings.HasPrefix(e.Ref, "refs/heads/") {
		return strings.TrimPrefix(e.Ref, "refs/heads/")
	}
	return ""
}
