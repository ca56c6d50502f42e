package common

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/jmoiron/sqlx"
)

// GetByID - универсальная функция для получения сущности по ID
func GetByID[T any](ctx context.Context, db sqlx.QueryerContext, table string, id interface{}, notFoundErr error) (*T, error) {
	var entity T
	query := fmt.Sprintf("SELECT * FROM %s WHERE id = $1", table)

	if err := sqlx.GetContext(ctx, db, &entity, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, notFoundErr
		}
		return nil, fmt.Errorf("get by id from %s: %w", table, err)
	}

	return &entity, nil
}

// SelectByField выбирает все строки с field = value, отсортированные по orderBy.
// orderBy передаётся как есть ("reported_at DESC"), пустая строка отключает сортировку.
func SelectByField[T any](ctx context.Context, db sqlx.QueryerContext, table, field string, value interface{}, orderBy string) ([]T, error) {
	query := fmt.Sprintf("SELECT * FROM %s WHERE %s = $1", table, field)
	if orderBy != "" {
		query += " ORDER BY " + orderBy
	}

	entities := []T{}
	if err := sqlx.SelectContext(ctx, db, &entities, query, value); err != nil {
		return nil, fmt.Errorf("select by %s from %s: %w", field, table, err)
	}
	return entities, nil
}

// UpdateByID обновляет перечисленные поля строки и возвращает её новое состояние.
func UpdateByID[T any](ctx context.Context, db sqlx.QueryerContext, table string, id interface{}, fields map[string]interface{}, notFoundErr error) (*T, error) {
	query, args, err := BuildUpdateQuery(table, id, fields)
	if err != nil {
		return nil, err
	}

	var entity T
	if err := sqlx.GetContext(ctx, db, &entity, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, notFoundErr
		}
		return nil, fmt.Errorf("update %s: %w", table, err)
	}
	return &entity, nil
}

// Insert вставляет строку и возвращает её в том виде, в каком её сохранила база
// (с id и значениями по умолчанию).
func Insert[T any](ctx context.Context, db sqlx.QueryerContext, table string, fields map[string]interface{}) (*T, error) {
	query, args, err := BuildInsertQuery(table, fields)
	if err != nil {
		return nil, err
	}

	var entity T
	if err := sqlx.GetContext(ctx, db, &entity, query, args...); err != nil {
		return nil, fmt.Errorf("insert into %s: %w", table, err)
	}
	return &entity, nil
}

// BuildInsertQuery собирает INSERT ... RETURNING * с колонками в алфавитном порядке.
func BuildInsertQuery(table string, fields map[string]interface{}) (string, []interface{}, error) {
	if len(fields) == 0 {
		return "", nil, fmt.Errorf("insert into %s: %w: нет полей для вставки", table, ErrInvalidInput)
	}

	columns := sortedColumns(fields)
	placeholders := make([]string, 0, len(columns))
	args := make([]interface{}, 0, len(columns))
	for i, column := range columns {
		placeholders = append(placeholders, fmt.Sprintf("$%d", i+1))
		args = append(args, fields[column])
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING *",
		table, strings.Join(columns, ", "), strings.Join(placeholders, ", "))
	return query, args, nil
}

// BuildUpdateQuery собирает UPDATE ... RETURNING * с плейсхолдерами в стабильном порядке колонок.
func BuildUpdateQuery(table string, id interface{}, fields map[string]interface{}) (string, []interface{}, error) {
	if len(fields) == 0 {
		return "", nil, fmt.Errorf("update %s: %w: нет полей для обновления", table, ErrInvalidInput)
	}

	columns := sortedColumns(fields)
	sets := make([]string, 0, len(columns))
	args := make([]interface{}, 0, len(columns)+1)
	for i, column := range columns {
		sets = append(sets, fmt.Sprintf("%s = $%d", column, i+1))
		args = append(args, fields[column])
	}
	args = append(args, id)

	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d RETURNING *",
		table, strings.Join(sets, ", "), len(args))
	return query, args, nil
}

func sortedColumns(fields map[string]interface{}) []string {
	columns := make([]string, 0, len(fields))
	for column := range fields {
		columns = append(columns, column)
	}
	sort.Strings(columns)
	return columns
}
