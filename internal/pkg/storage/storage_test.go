package storage

import "testing"

func TestGetFullPath(t *testing.T) {
	cases := []struct {
		basePath, objectName, want string
	}{
		{"", "a/b.jar", "a/b.jar"},
		{"", "/a/b.jar", "a/b.jar"},
		{"artifacts", "a/b.jar", "artifacts/a/b.jar"},
		{"/artifacts/", "/a/b.jar", "artifacts/a/b.jar"},
		{"artifacts/nested", "b.jar", "artifacts/nested/b.jar"},
	}
	for _, c := range cases {
		if got := getFullPath(c.basePath, c.objectName); got != c.want {
			t.Fatalf("getFullPath(%q, %q) = %q, want %q", c.basePath, c.objectName, got, c.want)
		}
	}
}

func TestNewStorageUnsupported(t *testing.T) {
	if _, err := NewStorage(&Storage{Provider: "tape"}); err == nil {
		t.Fatalf("expected error for unsupported provider")
	}
}

func TestArtifactRefString(t *testing.T) {
	ref := ArtifactRef{Provider: Minio, Bucket: "builds", Key: "artifacts/p/e/artifact-1.0.jar"}
	want := "minio://builds/artifacts/p/e/artifact-1.0.jar"
	if got := ref.String(); got != want {
		t.Fatalf("ref.String() = %q, want %q", got, want)
	}
}
