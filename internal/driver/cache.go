package driver

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"flexparse/internal/diag"
	"flexparse/internal/source"
	"flexparse/internal/token"
)

// Current schema version - increment when the token layout or the lexer
// output changes.
const tokenCacheSchemaVersion uint16 = 1

// TokenCache stores lexer output on disk keyed by the unit content hash.
// Thread-safe for concurrent access. A nil *TokenCache is a valid, disabled
// cache.
type TokenCache struct {
	mu  sync.RWMutex
	dir string
}

// tokenPayload is what goes to disk. Spans keep offsets only; the unit id is
// rewritten on load since it differs between runs.
type tokenPayload struct {
	Schema uint16
	Hash   [32]byte
	Tokens []token.Token
	Diags  []diag.Diagnostic
}

// OpenTokenCache opens the cache under dir, or under the user cache
// directory when dir is empty.
func OpenTokenCache(dir string) (*TokenCache, error) {
	if dir == "" {
		base := os.Getenv("XDG_CACHE_HOME")
		if base == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return nil, err
			}
			base = filepath.Join(home, ".cache")
		}
		dir = filepath.Join(base, "flexparse")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &TokenCache{dir: dir}, nil
}

// Dir returns the cache directory.
func (c *TokenCache) Dir() string {
	if c == nil {
		return ""
	}
	return c.dir
}

func (c *TokenCache) pathFor(key [32]byte) string {
	hexKey := hex.EncodeToString(key[:])
	// подкаталог по первым двум символам, чтобы не держать тысячи файлов в одном
	return filepath.Join(c.dir, "tokens", hexKey[:2], hexKey+".mp")
}

// Put stores the tokens and lexer diagnostics of unit.
func (c *TokenCache) Put(unit *source.Unit, toks []token.Token, diags []diag.Diagnostic) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(unit.Hash)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		// после успешного Rename файла уже нет
		if rmErr := os.Remove(f.Name()); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) {
			fmt.Fprintf(os.Stderr, "failed to remove temp file: %v\n", rmErr)
		}
	}()

	enc := msgpack.NewEncoder(f)
	err = enc.Encode(&tokenPayload{
		Schema: tokenCacheSchemaVersion,
		Hash:   unit.Hash,
		Tokens: toks,
		Diags:  diags,
	})
	if err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(f.Name(), p)
}

// Get loads the tokens for unit. ok is false on a miss or a stale entry.
func (c *TokenCache) Get(unit *source.Unit) (toks []token.Token, diags []diag.Diagnostic, ok bool, err error) {
	if c == nil {
		return nil, nil, false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(unit.Hash))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil, false, nil
		}
		return nil, nil, false, err
	}
	defer func() { _ = f.Close() }()

	var payload tokenPayload
	if err := msgpack.NewDecoder(f).Decode(&payload); err != nil {
		return nil, nil, false, fmt.Errorf("corrupt token cache entry: %w", err)
	}
	if payload.Schema != tokenCacheSchemaVersion || payload.Hash != unit.Hash {
		return nil, nil, false, nil
	}

	for i := range payload.Tokens {
		payload.Tokens[i].Span.Unit = unit.ID
	}
	for i := range payload.Diags {
		d := &payload.Diags[i]
		d.Primary.Unit = unit.ID
		for j := range d.Notes {
			d.Notes[j].Span.Unit = unit.ID
		}
	}
	return payload.Tokens, payload.Diags, true, nil
}

// DropAll invalidates the cache, useful after format changes.
func (c *TokenCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	// переименуем каталог и удалим
	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if err := os.RemoveAll(old); err != nil {
		return err
	}
	return os.MkdirAll(c.dir, 0o755)
}
