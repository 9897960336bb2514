package clients

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/valkey-io/valkey-go"
)

var (
	valkeyInstance *ValkeyClient
	valkeyOnce     sync.Once
)

// ValkeyClient backs the analysis result cache. It is a plain
// string-keyed, string-valued store; key layout and expiry policy live
// in the cache package.
type ValkeyClient struct {
	Client valkey.Client
	mu     sync.Mutex
}

func InitValkey() *ValkeyClient {
	valkeyOnce.Do(func() {
		client, err := newValkeyClient()
		if err != nil {
			panic(fmt.Errorf("[ValkeyClient] failed to create Valkey: %w", err))
		}

		if err := pingValkey(client); err != nil {
			panic(fmt.Errorf("[ValkeyClient] failed to ping Valkey: %w", err))
		}

		slog.Info("[ValkeyClient] Successfully connected to valkey")

		valkeyInstance = &ValkeyClient{Client: client}
	})
	return valkeyInstance
}

func newValkeyClient() (valkey.Client, error) {
	valkeyAddr := os.Getenv("VALKEY_INIT_ADDRESS")
	valkeyPassword := os.Getenv("VALKEY_PASSWORD")
	useTLS := os.Getenv("VALKEY_TLS") == "true"

	opts := valkey.ClientOption{
		InitAddress: []string{
			valkeyAddr,
		},
		Password:         valkeyPassword,
		ConnWriteTimeout: 5 * time.Second,
		SelectDB:         0,
	}

	if useTLS {
		opts.TLSConfig = &tls.Config{InsecureSkipVerify: false}
	}

	return valkey.NewClient(opts)
}

func pingValkey(client valkey.Client) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*3)
	defer cancel()

	return client.Do(ctx, client.B().Ping().Build()).Error()
}

func (vc *ValkeyClient) recreateClient() {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("[ValkeyClient] Recreate failed and was recovered from panic",
				slog.Any("panic", r))
		}
	}()

	vc.mu.Lock()
	defer vc.mu.Unlock()
	slog.Warn("[ValkeyClient] Attempting to recreate Valkey client...")
	vc.Client.Close()

	client, err := newValkeyClient()
	if err != nil {
		panic(fmt.Errorf("[ValkeyClient] failed to create Valkey: %w", err))
	}

	if err := pingValkey(client); err != nil {
		panic(fmt.Errorf("[ValkeyClient] failed to ping Valkey: %w", err))
	}

	slog.Info("[ValkeyClient] Successfully reconnected to valkey")
	vc.Client = client
}

func CloseValkey() {
	if valkeyInstance != nil {
		valkeyInstance.Client.Close()
	}
}

func GetValkeyClient() *ValkeyClient {
	if valkeyInstance == nil {
		panic("[ValkeyClient] Error: Valkey client is not initilialized")
	}
	return valkeyInstance
}

// GetValue reads a key. The second return is false when the key does
// not exist.
func (vc *ValkeyClient) GetValue(ctx context.Context, key string) (string, bool, error) {
	res := vc.DoWithRetry(ctx, vc.Client.B().Get().Key(key).Build(), 3)

	if err := res.Error(); err != nil {
		if valkey.IsValkeyNil(err) {
			return "", false, nil
		}
		if isConnectionError(err) {
			vc.recreateClient()
		}
		return "", false, err
	}

	value, err := res.ToString()
	if err != nil {
		return "", false, err
	}

	return value, true, nil
}

// SetValue writes a key with a server-side TTL as a safety net on top
// of the cache layer's own timestamp check.
func (vc *ValkeyClient) SetValue(ctx context.Context, key, value string, ttl time.Duration) error {
	res := vc.DoWithRetry(ctx,
		vc.Client.B().Set().Key(key).Value(value).Ex(ttl).Build(), 3)

	if err := res.Error(); err != nil {
		if isConnectionError(err) {
			vc.recreateClient()
		}
		return err
	}

	slog.Info("[ValkeyClient] Stored value successfully",
		slog.String("key", key))
	return nil
}

// DeleteValue removes a key; deleting a missing key is not an error.
func (vc *ValkeyClient) DeleteValue(ctx context.Context, key string) error {
	res := vc.DoWithRetry(ctx, vc.Client.B().Del().Key(key).Build(), 3)

	if err := res.Error(); err != nil {
		if isConnectionError(err) {
			vc.recreateClient()
		}
		return err
	}

	return nil
}

func (vc *ValkeyClient) DoWithRetry(ctx context.Context, completed valkey.Completed, retries int) valkey.ValkeyResult {
	var result valkey.ValkeyResult
	for i := 0; i < retries; i++ {
		result = vc.Client.Do(ctx, completed)
		if result.Error() == nil || valkey.IsValkeyNil(result.Error()) {
			break
		}

		slog.Warn("[ValkeyClient] Do failed",
			slog.Int("attempt", i+1),
			slog.String("error", result.Error().Error()))

		time.Sleep(250 * time.Millisecond)
	}

	return result
}

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "EOF") ||
		strings.Contains(msg, "i/o timeout")
}
