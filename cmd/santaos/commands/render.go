package commands

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"santaos/internal/domain"
)

type table struct{ tw *tabwriter.Writer }

func newTable(w io.Writer) *table {
	return &table{tw: tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)}
}

func (t *table) row(cols ...any) {
	parts := make([]string, len(cols))
	for i, c := range cols {
		s := fmt.Sprint(c)
		if s == "" {
			s = "-"
		}
		parts[i] = s
	}
	fmt.Fprintln(t.tw, strings.Join(parts, "\t"))
}

func (t *table) flush() error { return t.tw.Flush() }

func renderWishlists(t *table, items []domain.Wishlist) {
	t.row("ID", "CHILD", "AGE", "ITEMS", "STATUS", "CREATED")
	for _, w := range items {
		gifts := make([]string, len(w.Items))
		for i, it := range w.Items {
			gifts[i] = fmt.Sprintf("%s x%d", it.Name, it.Quantity)
		}
		t.row(w.ID, w.ChildName, w.ChildAge, strings.Join(gifts, ", "), w.Status, domain.Timestamp(w.CreatedAt))
	}
}

func renderTasks(t *table, items []domain.Task) {
	t.row("ID", "TITLE", "QTY", "PRIORITY", "ASSIGNED", "STATUS", "UPDATED")
	for _, x := range items {
		t.row(x.ID, x.Title, x.Quantity, x.Priority, x.AssignedTo, x.Status, domain.Timestamp(x.UpdatedAt))
	}
}

func renderDeliveries(t *table, items []domain.Delivery) {
	t.row("ID", "RECIPIENT", "ADDRESS", "STATUS", "ETA")
	for _, d := range items {
		eta := "-"
		if d.ETA != nil {
			eta = domain.Timestamp(*d.ETA)
		}
		t.row(d.ID, d.Recipient, d.Address, d.Status, eta)
	}
}

func renderWorkers(t *table, items []domain.Worker) {
	t.row("ID", "NAME", "SKILL", "ACTIVE")
	for _, w := range items {
		t.row(w.ID, w.Name, w.Skill, w.Active)
	}
}
