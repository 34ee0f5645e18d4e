package quorumcoord

import (
	"context"
	"errors"
	"net"
	"path/filepath"
	"testing"
	"time"

	fileserverv1 "ringquorum/internal/api/fileserver/v1"
	"ringquorum/internal/fileserver"
	"ringquorum/internal/rpcclient"

	"google.golang.org/grpc"
)

// startTestFileServer runs a real FileServer gRPC service backed by a
// fresh on-disk Store, the same wiring cmd/storageserver/main.go uses.
// Only the coordinator-facing half (GetVersion/Update/Fetch/GetFiles) is
// exercised here; the client-forwarding half is Coordinator's own
// concern and needs no coordinator address.
func startTestFileServer(t *testing.T) string {
	t.Helper()
	store, err := fileserver.NewStore(filepath.Join(t.TempDir(), "files"), nil)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	srv := fileserver.New(store, nil, "", nil)

	lis, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	grpcServer := grpc.NewServer()
	fileserverv1.RegisterFileServerServer(grpcServer, fileserver.NewService(srv))
	go func() { _ = grpcServer.Serve(lis) }()
	t.Cleanup(grpcServer.Stop)
	return lis.Addr().String()
}

func newTestCoordinator(t *testing.T, n, qWrite, qRead int, lockingScheme string) *Coordinator {
	t.Helper()
	pool := rpcclient.New(2*time.Second, 0)
	t.Cleanup(pool.Close)

	servers := make([]string, n)
	for i := range servers {
		servers[i] = startTestFileServer(t)
	}
	return New(servers, qWrite, qRead, lockingScheme, pool, nil)
}

// N=5, qW=3, qR=3: a write followed by a read returns what was written.
func TestWriteThenReadReturnsWrittenContent(t *testing.T) {
	c := newTestCoordinator(t, 5, 3, 3, "default")
	ctx := context.Background()

	if err := c.Write(ctx, "x", "A"); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, err := c.Read(ctx, "x")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if got != "A" {
		t.Fatalf("Read returned %q, want %q", got, "A")
	}
}

// A second write must be visible to every subsequent read regardless of which read quorum gets sampled, since qW+qR > N forces
// every read quorum to intersect the latest write quorum.
func TestReadSeesLatestWriteRegardlessOfQuorumSample(t *testing.T) {
	c := newTestCoordinator(t, 5, 3, 3, "default")
	ctx := context.Background()

	if err := c.Write(ctx, "x", "A"); err != nil {
		t.Fatalf("first Write: %v", err)
	}
	if err := c.Write(ctx, "x", "B"); err != nil {
		t.Fatalf("second Write: %v", err)
	}

	for i := 0; i < 20; i++ {
		got, err := c.Read(ctx, "x")
		if err != nil {
			t.Fatalf("Read %d: %v", i, err)
		}
		if got != "B" {
			t.Fatalf("Read %d returned %q, want %q", i, got, "B")
		}
	}
}

// Reading a file no server has ever seen fails with ErrFileNotFound.
func TestReadMissingFileFails(t *testing.T) {
	c := newTestCoordinator(t, 5, 3, 3, "default")
	if _, err := c.Read(context.Background(), "nope"); !errors.Is(err, ErrFileNotFound) {
		t.Fatalf("expected ErrFileNotFound, got %v", err)
	}
}

func TestListFilesReturnsEveryWrittenFile(t *testing.T) {
	c := newTestCoordinator(t, 5, 3, 3, "default")
	ctx := context.Background()

	if err := c.Write(ctx, "a.txt", "1"); err != nil {
		t.Fatalf("Write a.txt: %v", err)
	}
	if err := c.Write(ctx, "b.txt", "2"); err != nil {
		t.Fatalf("Write b.txt: %v", err)
	}

	files, err := c.ListFiles(ctx)
	if err != nil {
		t.Fatalf("ListFiles: %v", err)
	}
	names := make(map[string]bool, len(files))
	for _, f := range files {
		names[f.Name] = true
	}
	if !names["a.txt"] || !names["b.txt"] {
		t.Fatalf("expected a.txt and b.txt in listing, got %+v", files)
	}
}

func TestWriteUnderReadWriteLockingScheme(t *testing.T) {
	c := newTestCoordinator(t, 5, 3, 3, "readwrite")
	ctx := context.Background()

	if err := c.Write(ctx, "x", "A"); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, err := c.Read(ctx, "x")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if got != "A" {
		t.Fatalf("Read returned %q, want %q", got, "A")
	}
}
