package cache

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/karlseguin/ccache/v3"
	"github.com/xeptore/flaw/v8"

	"github.com/xeptore/jamsconv/errutil"
)

var DefaultDirTTL = 1 * time.Hour

// Dirs remembers output directories that have already been created so that
// each one is made at most once per TTL, however many tracks land in it.
type Dirs struct {
	c   *ccache.Cache[string]
	mux sync.Mutex
}

func NewDirs() *Dirs {
	return &Dirs{
		c: ccache.New(
			ccache.Configure[string]().
				MaxSize(10_000).
				GetsPerPromote(3).
				ItemsToPrune(100),
		),
		mux: sync.Mutex{},
	}
}

// Ensure creates dir and its parents unless it is known to exist already.
func (d *Dirs) Ensure(dir string) error {
	dir = filepath.Clean(dir)

	d.mux.Lock()
	defer d.mux.Unlock()
	_, err := d.c.Fetch(dir, DefaultDirTTL, func() (string, error) {
		if err := os.MkdirAll(dir, 0o0755); nil != err {
			flawP := flaw.P{"err_debug_tree": errutil.Tree(err).FlawP(), "dir": dir}
			return "", flaw.From(fmt.Errorf("failed to create output directory: %v", err)).Append(flawP)
		}
		return dir, nil
	})
	return err
}

// Len reports how many directories are currently remembered.
func (d *Dirs) Len() int {
	return d.c.ItemCount()
}

func (d *Dirs) Close() {
	d.c.Stop()
}
