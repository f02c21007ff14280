package codebase

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	lru "github.com/hashicorp/golang-lru"
	"github.com/minio/highwayhash"
	"github.com/spf13/afero"
	"github.com/tliron/commonlog"

	"github.com/dhamidi/jsfront/js/ast"
	"github.com/dhamidi/jsfront/js/parser"
)

const defaultCacheSize = 256

var defaultExtensions = []string{".js", ".mjs", ".cjs"}

var hashKey [32]byte // a zero key is enough for cache keys

// Hash identifies a file's path and content. It is used as the parse cache
// key.
type Hash struct {
	Low  uint64
	High uint64
}

func hashFile(path string, content []byte) Hash {
	h, _ := highwayhash.New128(hashKey[:])
	h.Write([]byte(path))
	h.Write([]byte{0})
	h.Write(content)
	var sum [16]byte
	h.Sum(sum[:0])
	return Hash{
		Low:  binary.LittleEndian.Uint64(sum[:8]),
		High: binary.LittleEndian.Uint64(sum[8:]),
	}
}

// Codebase holds the parsed JavaScript files under a root directory. Files
// are read through an afero.Fs, and parse results are cached by path and
// content so unchanged files are not parsed twice.
type Codebase struct {
	mu       sync.RWMutex
	fs       afero.Fs
	rootDir  string
	exts     map[string]bool
	maxNodes int
	debug    bool
	files    map[string]*FileInfo
	cache    *lru.Cache
	log      commonlog.Logger

	cacheSize int
	hits      int
	misses    int
}

type FileInfo struct {
	Path        string
	Content     []byte
	Hash        Hash
	AST         *ast.Program
	Diagnostics []parser.Diagnostic
	ErrorCount  int
	// ParseErr is set when the parse stopped early, e.g. because the node
	// budget ran out.
	ParseErr error
}

// Failed reports whether the file has syntax errors or could not be parsed
// to the end.
func (f *FileInfo) Failed() bool {
	return f.ErrorCount > 0 || f.ParseErr != nil
}

type parseResult struct {
	ast         *ast.Program
	diagnostics []parser.Diagnostic
	errorCount  int
	err         error
}

type Option func(*Codebase)

// WithFs reads files from fs instead of the operating system's file system.
func WithFs(fs afero.Fs) Option {
	return func(c *Codebase) {
		c.fs = fs
	}
}

// WithExtensions sets the file extensions ScanAll and Scan pick up.
func WithExtensions(exts ...string) Option {
	return func(c *Codebase) {
		c.exts = make(map[string]bool, len(exts))
		for _, ext := range exts {
			if ext != "" && !strings.HasPrefix(ext, ".") {
				ext = "." + ext
			}
			c.exts[ext] = true
		}
	}
}

func WithCacheSize(n int) Option {
	return func(c *Codebase) {
		c.cacheSize = n
	}
}

// WithMaxNodes limits the number of nodes built for a single file.
func WithMaxNodes(n int) Option {
	return func(c *Codebase) {
		c.maxNodes = n
	}
}

// WithDebug records DEBUG diagnostics for every parsed file.
func WithDebug() Option {
	return func(c *Codebase) {
		c.debug = true
	}
}

func WithLogger(log commonlog.Logger) Option {
	return func(c *Codebase) {
		c.log = log
	}
}

func New(rootDir string, opts ...Option) (*Codebase, error) {
	c := &Codebase{
		fs:        afero.NewOsFs(),
		rootDir:   rootDir,
		files:     make(map[string]*FileInfo),
		cacheSize: defaultCacheSize,
		log:       commonlog.GetLogger("jsfront.codebase"),
	}
	WithExtensions(defaultExtensions...)(c)
	for _, opt := range opts {
		opt(c)
	}
	cache, err := lru.New(c.cacheSize)
	if err != nil {
		return nil, fmt.Errorf("create parse cache: %w", err)
	}
	c.cache = cache
	return c, nil
}

func (c *Codebase) RootDir() string {
	return c.rootDir
}

func (c *Codebase) Fs() afero.Fs {
	return c.fs
}

// HasExtension reports whether path has one of the configured extensions.
func (c *Codebase) HasExtension(path string) bool {
	return c.exts[filepath.Ext(path)]
}

func (c *Codebase) ScanAll() error {
	return c.Scan(c.rootDir)
}

// Scan parses path. A directory is walked and every file with a configured
// extension is parsed; hidden directories and node_modules are skipped. A
// regular file is parsed whatever its extension.
func (c *Codebase) Scan(path string) error {
	info, err := c.fs.Stat(path)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return c.ScanFile(path)
	}
	return afero.Walk(c.fs, path, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			c.log.Warningf("skipping %s: %v", p, err)
			return nil
		}
		if info.IsDir() {
			name := info.Name()
			if p != path && (strings.HasPrefix(name, ".") || name == "node_modules") {
				return filepath.SkipDir
			}
			return nil
		}
		if !c.HasExtension(p) {
			return nil
		}
		if err := c.ScanFile(p); err != nil {
			c.log.Warningf("skipping %s: %v", p, err)
		}
		return nil
	})
}

func (c *Codebase) ScanFile(path string) error {
	content, err := afero.ReadFile(c.fs, path)
	if err != nil {
		return err
	}
	c.UpdateFile(path, content)
	return nil
}

// UpdateFile parses content as the new text of path. Syntax errors are
// recorded on the FileInfo; the parse itself cannot fail.
func (c *Codebase) UpdateFile(path string, content []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.updateFileLocked(path, content)
}

func (c *Codebase) updateFileLocked(path string, content []byte) {
	hash := hashFile(path, content)
	if f := c.files[path]; f != nil && f.Hash == hash {
		return
	}

	var result *parseResult
	if cached, ok := c.cache.Get(hash); ok {
		c.hits++
		result = cached.(*parseResult)
	} else {
		c.misses++
		result = c.parse(path, content)
		c.cache.Add(hash, result)
	}

	c.files[path] = &FileInfo{
		Path:        path,
		Content:     content,
		Hash:        hash,
		AST:         result.ast,
		Diagnostics: result.diagnostics,
		ErrorCount:  result.errorCount,
		ParseErr:    result.err,
	}
	c.log.Debug("parsed file", "path", path, "errors", result.errorCount)
}

func (c *Codebase) parse(path string, content []byte) *parseResult {
	opts := []parser.Option{
		parser.WithFile(path),
		parser.WithMaxNodes(c.maxNodes),
		parser.WithLogger(c.log),
	}
	if c.debug {
		opts = append(opts, parser.WithDebug())
	}
	p := parser.ParseProgram(bytes.NewReader(content), opts...)
	prog, err := p.Finish()
	if err != nil {
		c.log.Errorf("parse %s: %v", path, err)
	}
	return &parseResult{
		ast:         prog,
		diagnostics: p.Diagnostics(),
		errorCount:  p.ErrorCount(),
		err:         err,
	}
}

func (c *Codebase) RemoveFile(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.files, path)
}

func (c *Codebase) GetFile(path string) *FileInfo {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.files[path]
}

// Files returns every parsed file, sorted by path.
func (c *Codebase) Files() []*FileInfo {
	c.mu.RLock()
	defer c.mu.RUnlock()
	files := make([]*FileInfo, 0, len(c.files))
	for _, f := range c.files {
		files = append(files, f)
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files
}

// ErrorCount returns the number of syntax errors across all files.
func (c *Codebase) ErrorCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	total := 0
	for _, f := range c.files {
		total += f.ErrorCount
	}
	return total
}

// CacheStats returns how many parses were served from the cache and how
// many ran the parser.
func (c *Codebase) CacheStats() (hits, misses int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hits, c.misses
}
