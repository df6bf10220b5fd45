/*
Package sqlset reads datasets from SQL database tables and writes them to
new ones through database/sql.

Every feature is a column of the table named like the feature: nominal
features are TEXT columns and numeric ones REAL columns. The driver is
chosen by whoever opens the *sql.DB; statements use $N placeholders and
double quoted identifiers, understood by both sqlite3 and postgres.
*/
package sqlset

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/pbanos/dtlearn/dataset"
	"github.com/pbanos/dtlearn/feature"
)

/*
Read takes a context, a database, the name of a table and a slice of
features (the last one being the label) and returns the dataset with the
rows of the table, or an error if the table cannot be queried or a row does
not hold valid values for the features.
*/
func Read(ctx context.Context, db *sql.DB, table string, features []feature.Feature) (*dataset.Dataset, error) {
	d, err := dataset.Empty(features)
	if err != nil {
		return nil, err
	}
	query, err := selectStmt(table, features)
	if err != nil {
		return nil, err
	}
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying table %s: %v", table, err)
	}
	defer rows.Close()
	for n := 1; rows.Next(); n++ {
		instance, err := scanInstance(rows, features)
		if err != nil {
			return nil, fmt.Errorf("scanning row %d of table %s: %v", n, table, err)
		}
		if err = d.Add(instance); err != nil {
			return nil, fmt.Errorf("row %d of table %s: %v", n, table, err)
		}
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("reading table %s: %v", table, err)
	}
	return d, nil
}

/*
Write takes a context, a database, the name of a table and a dataset,
creates the table with a column per feature of the dataset and inserts
its instances in a single transaction.
*/
func Write(ctx context.Context, db *sql.DB, table string, d *dataset.Dataset) error {
	create, err := createStmt(table, d.Features())
	if err != nil {
		return err
	}
	insert, err := insertStmt(table, d.Features())
	if err != nil {
		return err
	}
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %v", err)
	}
	if _, err = tx.ExecContext(ctx, create); err != nil {
		tx.Rollback()
		return fmt.Errorf("creating table %s: %v", table, err)
	}
	stmt, err := tx.PrepareContext(ctx, insert)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("preparing insertion into %s: %v", table, err)
	}
	defer stmt.Close()
	for i, instance := range d.Instances() {
		if _, err = stmt.ExecContext(ctx, instance...); err != nil {
			tx.Rollback()
			return fmt.Errorf("inserting instance %d into %s: %v", i+1, table, err)
		}
	}
	return tx.Commit()
}

func scanInstance(rows *sql.Rows, features []feature.Feature) (dataset.Instance, error) {
	dest := make([]interface{}, len(features))
	for i, f := range features {
		if f.Kind() == feature.Numeric {
			dest[i] = new(float64)
		} else {
			dest[i] = new(string)
		}
	}
	if err := rows.Scan(dest...); err != nil {
		return nil, err
	}
	instance := make(dataset.Instance, len(features))
	for i, v := range dest {
		switch v := v.(type) {
		case *float64:
			instance[i] = *v
		case *string:
			instance[i] = *v
		}
	}
	return instance, nil
}

// identifier quotes name to be used as table or column name
func identifier(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("empty identifier")
	}
	if strings.ContainsAny(name, `"`) {
		return "", fmt.Errorf(`name '%s' contains invalid character '"'`, name)
	}
	return `"` + name + `"`, nil
}

func columns(features []feature.Feature) ([]string, error) {
	result := make([]string, len(features))
	for i, f := range features {
		c, err := identifier(f.Name())
		if err != nil {
			return nil, fmt.Errorf("feature %d: %v", i, err)
		}
		result[i] = c
	}
	return result, nil
}

func selectStmt(table string, features []feature.Feature) (string, error) {
	t, err := identifier(table)
	if err != nil {
		return "", err
	}
	cols, err := columns(features)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("SELECT %s FROM %s", strings.Join(cols, ", "), t), nil
}

func createStmt(table string, features []feature.Feature) (string, error) {
	t, err := identifier(table)
	if err != nil {
		return "", err
	}
	cols, err := columns(features)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "CREATE TABLE %s (", t)
	for i, c := range cols {
		if i > 0 {
			buf.WriteString(", ")
		}
		kind := "TEXT"
		if features[i].Kind() == feature.Numeric {
			kind = "REAL"
		}
		fmt.Fprintf(&buf, "%s %s NOT NULL", c, kind)
	}
	buf.WriteString(")")
	return buf.String(), nil
}

func insertStmt(table string, features []feature.Feature) (string, error) {
	t, err := identifier(table)
	if err != nil {
		return "", err
	}
	cols, err := columns(features)
	if err != nil {
		return "", err
	}
	placeholders := make([]string, len(cols))
	for i := range placeholders {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", t, strings.Join(cols, ", "), strings.Join(placeholders, ", ")), nil
}
