package api

import (
	"crypto/tls"
	"encoding/json"
	"fmt"
	"github.com/fernandosanchezjr/goscrambler/backend/storage"
	"github.com/fernandosanchezjr/goscrambler/cache"
	"github.com/fernandosanchezjr/goscrambler/cinit"
	"github.com/fernandosanchezjr/goscrambler/config"
	"github.com/fernandosanchezjr/goscrambler/recovery"
	"github.com/fernandosanchezjr/goscrambler/utils"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"path"
	"strings"
	"sync"
	"testing"
	"time"
)

const testBits = 64

var (
	testCacheOnce sync.Once
	testCache     *cache.SeedCache
	testCacheErr  error
)

func getTestCache(t *testing.T) *cache.SeedCache {
	testCacheOnce.Do(func() {
		testCache, testCacheErr = cache.Build(testBits, cinit.DefaultSlot, 0)
	})
	if testCacheErr != nil {
		t.Fatal(testCacheErr)
	}
	return testCache
}

func newTestService(t *testing.T, persist bool) *Service {
	cfg := config.Default()
	cfg.Cache.Bits = testBits
	cfg.Cache.Store = storage.FileKind
	cfg.Server.Address = "127.0.0.1:0"
	store := storage.NewFileStore(path.Join(t.TempDir(), storage.CacheFile))
	if persist {
		if err := store.Persist(getTestCache(t)); err != nil {
			t.Fatal(err)
		}
	}
	return NewService(cfg, store)
}

func get(t *testing.T, server *httptest.Server, target string, expectedStatus int) []byte {
	response, err := http.Get(server.URL + target)
	if err != nil {
		t.Fatal(err)
	}
	defer response.Body.Close()
	body, err := ioutil.ReadAll(response.Body)
	if err != nil {
		t.Fatal(err)
	}
	if response.StatusCode != expectedStatus {
		t.Fatalf("%s: expected status %d, got %d: %s", target, expectedStatus, response.StatusCode, body)
	}
	return body
}

func TestService_GetSequence(t *testing.T) {
	service := newTestService(t, false)
	server := httptest.NewServer(service.Handler())
	defer server.Close()
	for i := 0; i < 2; i++ {
		var response SequenceResponse
		if err := json.Unmarshal(get(t, server, "/sequence/0?length=64", http.StatusOK), &response); err != nil {
			t.Fatal(err)
		}
		if response.Bits != "0000001000011010000100100111101000100101100101010000001101010110" {
			t.Fatalf("unexpected sequence %s", response.Bits)
		}
	}
	var response SequenceResponse
	if err := json.Unmarshal(get(t, server, "/sequence/7733248", http.StatusOK), &response); err != nil {
		t.Fatal(err)
	}
	if response.Length != DefaultSequenceLength ||
		response.Bits != "1111101010010110000001000110110001111010000111001010011011110100" {
		t.Fatalf("unexpected response %+v", response)
	}
	get(t, server, "/sequence/zero", http.StatusBadRequest)
	get(t, server, "/sequence/0?length=-1", http.StatusBadRequest)
	get(t, server, fmt.Sprintf("/sequence/0?length=%d", MaxSequenceLength+1), http.StatusBadRequest)
}

func TestService_GetCInit(t *testing.T) {
	service := newTestService(t, false)
	server := httptest.NewServer(service.Handler())
	defer server.Close()
	for target, expected := range map[string]int64{
		"/cinit/0":     7733248,
		"/cinit/1":     23199746,
		"/cinit/65535": 2139881470,
		"/cinit/7?symbolsPerSlot=14&slotNumber=0&symbolNumber=0": 1966094,
	} {
		var response CInitResponse
		if err := json.Unmarshal(get(t, server, target, http.StatusOK), &response); err != nil {
			t.Fatal(err)
		}
		if response.CInit != expected {
			t.Fatalf("%s: expected %d, got %d", target, expected, response.CInit)
		}
	}
	get(t, server, "/cinit/65536", http.StatusBadRequest)
	get(t, server, "/cinit/-1", http.StatusBadRequest)
	get(t, server, "/cinit/1?slotNumber=four", http.StatusBadRequest)
}

func TestService_GetCandidates(t *testing.T) {
	service := newTestService(t, true)
	server := httptest.NewServer(service.Handler())
	defer server.Close()
	get(t, server, "/candidates/0101", http.StatusServiceUnavailable)
	if err := service.Reload(); err != nil {
		t.Fatal(err)
	}
	entry, _ := getTestCache(t).Entry(5)
	tail := entry.Tail(40)
	var response CandidatesResponse
	if err := json.Unmarshal(get(t, server, "/candidates/"+tail.String(), http.StatusOK), &response); err != nil {
		t.Fatal(err)
	}
	if response.ObservedBits != 40 {
		t.Fatalf("unexpected observed bits %d", response.ObservedBits)
	}
	found := false
	for _, m := range response.Matches {
		if m.ScramblingId == 5 {
			found = true
			if m.Position > testBits-40 {
				t.Fatalf("unexpected position %d", m.Position)
			}
		}
	}
	if !found {
		t.Fatal("truth identifier missing from matches")
	}
	get(t, server, "/candidates/0121", http.StatusBadRequest)
	get(t, server, "/candidates/"+strings.Repeat("1", recovery.MaxTailBits+1), http.StatusBadRequest)
}

func TestService_GetReport(t *testing.T) {
	service := newTestService(t, true)
	if err := service.Reload(); err != nil {
		t.Fatal(err)
	}
	server := httptest.NewServer(service.Handler())
	defer server.Close()
	text := string(get(t, server, "/report?maxBits=8&seed=3&format=text", http.StatusOK))
	if !strings.HasPrefix(text, "# run ") || !strings.Contains(text, "\n8 ") {
		t.Fatalf("unexpected report %q", text)
	}
	var report recovery.Report
	if err := json.Unmarshal(get(t, server, "/report?maxBits=8&seed=3&format=json", http.StatusOK), &report); err != nil {
		t.Fatal(err)
	}
	if len(report.Results) != 8 || report.Seed != 3 {
		t.Fatalf("unexpected report %+v", report)
	}
	if len(get(t, server, "/report?maxBits=8", http.StatusOK)) == 0 {
		t.Fatal("empty chart")
	}
	get(t, server, "/report?maxBits=eight", http.StatusBadRequest)
}

func TestService_StartStop(t *testing.T) {
	service := newTestService(t, false)
	if err := service.Start(); err != nil {
		t.Fatal(err)
	}
	defer func() {
		if err := service.Stop(); err != nil {
			t.Fatal(err)
		}
	}()
	if service.Engine().Cache() != nil {
		t.Fatal("no cache should be loaded yet")
	}
	response, err := http.Get(fmt.Sprintf("http://%s/cinit/0", service.Addr()))
	if err != nil {
		t.Fatal(err)
	}
	_ = response.Body.Close()
	if response.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status %d", response.StatusCode)
	}
	if err := service.store.Persist(getTestCache(t)); err != nil {
		t.Fatal(err)
	}
	deadline := time.Now().Add(10 * time.Second)
	for service.Engine().Cache() == nil {
		if time.Now().After(deadline) {
			t.Fatal("seed cache was not reloaded after being persisted")
		}
		time.Sleep(100 * time.Millisecond)
	}
}

func TestService_StartTLS(t *testing.T) {
	previous := utils.HomeFolder
	utils.HomeFolder = t.TempDir()
	defer func() { utils.HomeFolder = previous }()
	service := newTestService(t, false)
	service.cfg.Server.TLS = true
	if err := service.Start(); err != nil {
		t.Fatal(err)
	}
	defer func() {
		if err := service.Stop(); err != nil {
			t.Fatal(err)
		}
	}()
	client := &http.Client{Transport: &http.Transport{TLSClientConfig: &tls.Config{InsecureSkipVerify: true}}}
	response, err := client.Get(fmt.Sprintf("https://%s/cinit/1", service.Addr()))
	if err != nil {
		t.Fatal(err)
	}
	defer response.Body.Close()
	var body CInitResponse
	if err := json.NewDecoder(response.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body.CInit != 23199746 {
		t.Fatalf("unexpected c_init %d", body.CInit)
	}
}

func TestService_Restart(t *testing.T) {
	service := newTestService(t, false)
	for round := 0; round < 2; round++ {
		if err := service.Start(); err != nil {
			t.Fatal(err)
		}
		response, err := http.Get(fmt.Sprintf("http://%s/sequence/0?length=32", service.Addr()))
		if err != nil {
			t.Fatal(err)
		}
		_ = response.Body.Close()
		if response.StatusCode != http.StatusOK {
			t.Fatalf("round %d: unexpected status %d", round, response.StatusCode)
		}
		if _, found := service.sequences.Get("0/32"); !found {
			t.Fatalf("round %d: sequence was not cached", round)
		}
		if err := service.Stop(); err != nil {
			t.Fatal(err)
		}
	}
}
