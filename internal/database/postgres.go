package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"catalog-orders/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// postgresGateway keeps every collection in a table of (id, doc jsonb).
// Ids are generated here so that ordering by id is insertion order.
type postgresGateway struct {
	pool *pgxpool.Pool
}

// NewPostgresGateway opens a connection pool for dsn and verifies it with a ping.
func NewPostgresGateway(ctx context.Context, dsn string, maxConns int32) (Gateway, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse postgres dsn: %w", err)
	}
	if maxConns > 0 {
		cfg.MaxConns = maxConns
	}
	cfg.MinConns = 1
	cfg.HealthCheckPeriod = 30 * time.Second

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create postgres pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	return &postgresGateway{pool: pool}, nil
}

func (g *postgresGateway) Insert(ctx context.Context, coll Collection, doc any) (domain.ID, error) {
	body, err := json.Marshal(doc)
	if err != nil {
		return domain.NilID, fmt.Errorf("failed to encode %s document: %w", coll, err)
	}

	var fields map[string]any
	if err := json.Unmarshal(body, &fields); err != nil {
		return domain.NilID, fmt.Errorf("%s document is not an object: %w", coll, err)
	}

	id := domain.NewID()
	fields["_id"] = id.String()

	body, err = json.Marshal(fields)
	if err != nil {
		return domain.NilID, fmt.Errorf("failed to encode %s document: %w", coll, err)
	}

	query := fmt.Sprintf(`INSERT INTO %s (id, doc) VALUES ($1, $2)`, table(coll))
	if _, err := g.pool.Exec(ctx, query, id.String(), body); err != nil {
		return domain.NilID, fmt.Errorf("failed to insert into %s: %w", coll, err)
	}

	return id, nil
}

func (g *postgresGateway) Count(ctx context.Context, coll Collection, filter Filter) (int64, error) {
	where, args, err := sqlWhere(filter, 1)
	if err != nil {
		return 0, err
	}

	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s %s`, table(coll), where)

	var total int64
	if err := g.pool.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", coll, err)
	}
	return total, nil
}

func (g *postgresGateway) Find(ctx context.Context, coll Collection, filter Filter, page domain.Page, out any) error {
	where, args, err := sqlWhere(filter, 1)
	if err != nil {
		return err
	}
	argIndex := len(args) + 1

	// Aggregating the page into one JSON array lets out be decoded in one step.
	query := fmt.Sprintf(`
		SELECT COALESCE(jsonb_agg(page.doc ORDER BY page.id), '[]'::jsonb)
		FROM (
			SELECT id, doc FROM %s
			%s
			ORDER BY id
			LIMIT $%d OFFSET $%d
		) page
	`, table(coll), where, argIndex, argIndex+1)

	args = append(args, page.Limit, page.Offset)

	var body []byte
	if err := g.pool.QueryRow(ctx, query, args...).Scan(&body); err != nil {
		return fmt.Errorf("failed to find %s: %w", coll, err)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode %s: %w", coll, err)
	}
	return nil
}

func (g *postgresGateway) FindByID(ctx context.Context, coll Collection, id domain.ID, out any) error {
	query := fmt.Sprintf(`SELECT doc FROM %s WHERE id = $1`, table(coll))

	var body []byte
	if err := g.pool.QueryRow(ctx, query, id.String()).Scan(&body); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to find %s by id: %w", coll, err)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode %s: %w", coll, err)
	}
	return nil
}

func (g *postgresGateway) Ping(ctx context.Context) error {
	return g.pool.Ping(ctx)
}

func (g *postgresGateway) Close(ctx context.Context) error {
	g.pool.Close()
	return nil
}

func table(coll Collection) string {
	return pgx.Identifier{string(coll)}.Sanitize()
}

// sqlWhere renders filter as a WHERE clause with numbered placeholders
// starting at argIndex. Field names are bound as parameters too.
func sqlWhere(filter Filter, argIndex int) (string, []any, error) {
	if len(filter) == 0 {
		return "", nil, nil
	}

	clauses := make([]string, 0, len(filter))
	args := []any{}

	for _, c := range filter {
		switch c.Op {
		case OpEq:
			clauses = append(clauses, fmt.Sprintf(`doc->>$%d::text = $%d`, argIndex, argIndex+1))
			args = append(args, c.Field, c.Value)
		case OpContainsFold:
			clauses = append(clauses, fmt.Sprintf(`doc->>$%d::text ILIKE $%d ESCAPE '\'`, argIndex, argIndex+1))
			args = append(args, c.Field, "%"+escapeLike(c.Value)+"%")
		case OpAnyEq:
			elem, err := json.Marshal([]map[string]string{{c.Sub: c.Value}})
			if err != nil {
				return "", nil, fmt.Errorf("failed to encode %s filter: %w", c.Field, err)
			}
			clauses = append(clauses, fmt.Sprintf(`doc->$%d::text @> $%d::jsonb`, argIndex, argIndex+1))
			args = append(args, c.Field, string(elem))
		default:
			return "", nil, fmt.Errorf("unsupported filter operator %d", c.Op)
		}
		argIndex += 2
	}

	return "WHERE " + strings.Join(clauses, " AND "), args, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes text match literally inside a LIKE pattern.
func escapeLike(text string) string {
	return likeEscaper.Replace(text)
}
