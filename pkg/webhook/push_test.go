package webhook

import "testing"

func TestParsePush(t *testing.T) {
	body := []byte(`{
		"ref": "refs/heads/master",
		"after": "6113728f27ae587b532c",
		"repository": {"name": "streams-infra", "owner": {"name": "acme"}},
		"pusher": {"name": "dev"}
	}`)

	ev, err := ParsePush(body)
	if err != nil {
		t.Fatalf("ParsePush: %v", err)
	}
	if ev.Ref != "refs/heads/master" {
		t.Fatalf("ref = %q", ev.Ref)
	}
	if ev.Repository.OwnerName() != "acme" || ev.Repository.Name != "streams-infra" {
		t.Fatalf("repository = %+v", ev.Repository)
	}
	if !ev.MatchesBranch("master") {
		t.Fatalf("expected master branch match")
	}
	if ev.MatchesBranch("feature-x") {
		t.Fatalf("unexpected feature-x match")
	}
	if ev.Branch() != "master" {
		t.Fatalf("branch = %q", ev.Branch())
	}
}

func TestParsePush_OwnerLogin(t *testing.T) {
	body := []byte(`{"ref":"refs/heads/dev","repository":{"name":"r","owner":{"login":"someone"}}}`)
	ev, err := ParsePush(body)
	if err != nil {
		t.Fatalf("ParsePush: %v", err)
	}
	if ev.Repository.OwnerName() != "someone" {
		t.Fatalf("owner = %q", ev.Repository.OwnerName())
	}
}

func TestParsePush_Invalid(t *testing.T) {
	if _, err := ParsePush([]byte("not-json")); err == nil {
		t.Fatalf("expected error for invalid payload")
	}
	if _, err := ParsePush([]byte(`{"repository":{"name":"r"}}`)); err == nil {
		t.Fatalf("expected error for missing ref")
	}
}

func TestBranchOfTagRef(t *testing.T) {
	ev := &PushEvent{Ref: "refs/tags/v1.0.0"}
	if ev.Branch() != "" {
		t.Fatalf("tag ref should have no branch, got %q", ev.Branch())
	}
}
