// Package sqlog persists store additions in an append-only sqlite table.
// It backs the orchestrator's element log: every added element is recorded
// durably and replayed, in insertion order, when the orchestrator is
// reconstructed.
package sqlog

import (
	"context"
	"errors"
	"fmt"

	sqlite "github.com/go-llsqlite/crawshaw"
	"github.com/go-llsqlite/crawshaw/sqlitex"
	"go.uber.org/zap"

	"github.com/yku12cn/cpisync/item"
)

const schema = `CREATE TABLE IF NOT EXISTS elements
(
    id    INTEGER PRIMARY KEY AUTOINCREMENT,
    value BLOB NOT NULL
);`

// errStopIteration aborts an sqlite result walk early; it never escapes.
var errStopIteration = errors.New("stop iteration")

// Opt specifies an option for a Log.
type Opt func(*Log)

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Opt {
	return func(l *Log) {
		l.logger = logger
	}
}

// Log is an append-only element log stored in an sqlite database.
type Log struct {
	logger *zap.Logger
	pool   *sqlitex.Pool
}

// Open opens (creating if needed) the element log at the given sqlite URI.
func Open(uri string, opts ...Opt) (*Log, error) {
	l := &Log{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(l)
	}
	pool, err := sqlitex.Open(uri, 0, 1)
	if err != nil {
		return nil, fmt.Errorf("open element log %q: %w", uri, err)
	}
	l.pool = pool
	if err := l.withConn(func(conn *sqlite.Conn) error {
		return sqlitex.ExecScript(conn, schema)
	}); err != nil {
		pool.Close()
		return nil, fmt.Errorf("create element log schema: %w", err)
	}
	return l, nil
}

// InMemory creates an element log in an in-memory database, for tests.
func InMemory() *Log {
	l, err := Open("file::memory:?mode=memory")
	if err != nil {
		panic("BUG: failed to open in-memory element log: " + err.Error())
	}
	return l
}

// Append durably records one added element.
func (l *Log) Append(it item.Item) error {
	err := l.withConn(func(conn *sqlite.Conn) error {
		return sqlitex.Exec(conn, "INSERT INTO elements (value) VALUES (?);", nil, it.Bytes())
	})
	if err != nil {
		return fmt.Errorf("append element: %w", err)
	}
	l.logger.Debug("element logged", zap.Object("item", it))
	return nil
}

// All calls yield for every recorded element in insertion order, stopping
// early if yield returns false.
func (l *Log) All(yield func(item.Item) bool) error {
	err := l.withConn(func(conn *sqlite.Conn) error {
		return sqlitex.Exec(conn, "SELECT value FROM elements ORDER BY id;",
			func(stmt *sqlite.Stmt) error {
				buf := make([]byte, stmt.ColumnLen(0))
				stmt.ColumnBytes(0, buf)
				it, err := item.New(buf)
				if err != nil {
					return fmt.Errorf("corrupt element record: %w", err)
				}
				if !yield(it) {
					return errStopIteration
				}
				return nil
			})
	})
	if err != nil && !errors.Is(err, errStopIteration) {
		return fmt.Errorf("walk element log: %w", err)
	}
	return nil
}

// Len returns the number of recorded elements.
func (l *Log) Len() (int, error) {
	var n int
	err := l.withConn(func(conn *sqlite.Conn) error {
		return sqlitex.Exec(conn, "SELECT count(*) FROM elements;",
			func(stmt *sqlite.Stmt) error {
				n = stmt.ColumnInt(0)
				return nil
			})
	})
	if err != nil {
		return 0, fmt.Errorf("count elements: %w", err)
	}
	return n, nil
}

// Close releases the underlying database.
func (l *Log) Close() error {
	return l.pool.Close()
}

func (l *Log) withConn(f func(conn *sqlite.Conn) error) error {
	conn := l.pool.Get(context.Background())
	if conn == nil {
		return errors.New("no database connection available")
	}
	defer l.pool.Put(conn)
	return f(conn)
}
