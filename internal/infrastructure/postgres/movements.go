package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/stock-api/internal/domain/entity"
	"github.com/jhoicas/stock-api/internal/domain/repository"
)

// movementQuery arma el SELECT de un libro. table es una constante interna, nunca entrada de usuario.
// Se ordena por id para que la agregación sea determinista.
func movementQuery(table string, f repository.MovementFilter) (string, []any) {
	cols := "m.product_id, m.size_code, m.color_id, m.quantity"
	from := table + " m"
	if f.WithColorNames {
		cols += ", COALESCE(c.name, '')"
		from += " LEFT JOIN colors c ON c.id = m.color_id"
	}
	query := fmt.Sprintf("SELECT %s FROM %s WHERE m.product_id = $1", cols, from)
	args := []any{f.ProductID}
	if f.SizeCode != nil {
		query += " AND m.size_code = $2"
		args = append(args, *f.SizeCode)
	}
	query += " ORDER BY m.id"
	return query, args
}

func listMovements(ctx context.Context, q Querier, query string, args []any, withNames bool) ([]entity.MovementRecord, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	list := []entity.MovementRecord{}
	for rows.Next() {
		var m entity.MovementRecord
		dest := []any{&m.ProductID, &m.SizeCode, &m.ColorID, &m.Qty}
		if withNames {
			dest = append(dest, &m.ColorName)
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}
