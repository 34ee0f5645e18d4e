package dictclient

import (
	"context"
	"errors"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	bootstrapv1 "ringquorum/internal/api/bootstrap/v1"
	ringv1 "ringquorum/internal/api/ring/v1"
	"ringquorum/internal/bootstrapcoord"
	"ringquorum/internal/identifier"
	"ringquorum/internal/ringnode"
	"ringquorum/internal/rpcclient"

	"google.golang.org/grpc"
)

// newTestDHT starts a real Bootstrap Coordinator and a single Ring Node
// over localhost and joins the node into an (empty) ring, the same
// sequence cmd/bootstrapnode and cmd/ringnode drive in production.
func newTestDHT(t *testing.T) (bootstrapAddr string, pool *rpcclient.Pool) {
	t.Helper()
	space, err := identifier.NewSpace(8)
	if err != nil {
		t.Fatalf("NewSpace: %v", err)
	}

	pool = rpcclient.New(2*time.Second, 0)
	t.Cleanup(pool.Close)

	blis, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	coord := bootstrapcoord.New(space, nil)
	bsrv := grpc.NewServer()
	bootstrapv1.RegisterBootstrapServer(bsrv, bootstrapcoord.NewService(coord))
	go func() { _ = bsrv.Serve(blis) }()
	t.Cleanup(bsrv.Stop)
	bootstrapAddr = blis.Addr().String()

	nlis, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	self := identifier.NodeInfo{ID: space.HashString(nlis.Addr().String()), Addr: nlis.Addr().String()}
	node := ringnode.NewNode(self, space, false, pool, nil)
	nsrv := grpc.NewServer()
	ringv1.RegisterRingServer(nsrv, ringnode.NewService(node))
	go func() { _ = nsrv.Serve(nlis) }()
	t.Cleanup(nsrv.Stop)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := node.Join(ctx, bootstrapAddr, 10*time.Millisecond); err != nil {
		t.Fatalf("Join: %v", err)
	}
	return bootstrapAddr, pool
}

func TestClientPutGetDuplicateNotFound(t *testing.T) {
	bootstrapAddr, pool := newTestDHT(t)
	client := New(pool, bootstrapAddr, false, nil)
	ctx := context.Background()

	if err := client.Put(ctx, "apple", "fruit"); err != nil {
		t.Fatalf("Put: %v", err)
	}
	def, err := client.Get(ctx, "apple")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if def != "fruit" {
		t.Fatalf("Get returned %q, want %q", def, "fruit")
	}
	if err := client.Put(ctx, "apple", "anything"); !errors.Is(err, ErrDuplicateWord) {
		t.Fatalf("expected ErrDuplicateWord, got %v", err)
	}
	if _, err := client.Get(ctx, "pear"); !errors.Is(err, ErrWordNotFound) {
		t.Fatalf("expected ErrWordNotFound, got %v", err)
	}
}

func TestClientReuseConnectionStillReachesRing(t *testing.T) {
	bootstrapAddr, pool := newTestDHT(t)
	client := New(pool, bootstrapAddr, true, nil)
	ctx := context.Background()

	if err := client.Put(ctx, "apple", "fruit"); err != nil {
		t.Fatalf("Put: %v", err)
	}
	// A second command must reuse the cached node rather than re-picking.
	def, err := client.Get(ctx, "apple")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if def != "fruit" {
		t.Fatalf("Get returned %q, want %q", def, "fruit")
	}
}

func TestRunnerStoreThenLoadRoundTrips(t *testing.T) {
	bootstrapAddr, pool := newTestDHT(t)
	client := New(pool, bootstrapAddr, true, nil)
	runner := NewRunner(client, nil)
	ctx := context.Background()

	dir := t.TempDir()
	storeFile := filepath.Join(dir, "words.txt")
	storeContent := "apple\nDefn: fruit\npear\nDefn: fruit too\n"
	if err := os.WriteFile(storeFile, []byte(storeContent), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if err := runner.Run(ctx, []string{"store " + storeFile}); err != nil {
		t.Fatalf("Run store: %v", err)
	}

	loadFile := filepath.Join(dir, "lookup.txt")
	if err := os.WriteFile(loadFile, []byte("apple\npear\nkiwi\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	outFile := filepath.Join(dir, "out.txt")
	if err := runner.Run(ctx, []string{"load " + loadFile + " " + outFile}); err != nil {
		t.Fatalf("Run load: %v", err)
	}

	out, err := os.ReadFile(outFile)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	want := "apple\n Defn: fruit\npear\n Defn: fruit too\nkiwi\n Defn: \n"
	if string(out) != want {
		t.Fatalf("output = %q, want %q", string(out), want)
	}
}

func TestRunnerPutGetCommandsSurviveDuplicateAndNotFound(t *testing.T) {
	bootstrapAddr, pool := newTestDHT(t)
	client := New(pool, bootstrapAddr, true, nil)
	runner := NewRunner(client, nil)
	ctx := context.Background()

	commands := []string{
		"put apple fruit",
		"put apple fruit", // duplicate: logged and continued, not fatal
		"get apple",
		"get nosuchword", // not found: logged and continued, not fatal
	}
	if err := runner.Run(ctx, commands); err != nil {
		t.Fatalf("Run: %v", err)
	}
}
