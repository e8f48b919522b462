package view

import (
	"context"
	"io"

	"locallibrary/internal/catalog"
	"locallibrary/internal/form"
)

type InstanceListPage struct {
	Title     string                   `json:"title"`
	Instances []catalog.InstanceDetail `json:"bookinstance_list"`
}

func (p InstanceListPage) Render(ctx context.Context, w io.Writer) error {
	return instanceList(p).Render(ctx, w)
}

type InstanceDetailPage struct {
	Title    string                 `json:"title"`
	Instance catalog.InstanceDetail `json:"bookinstance"`
}

func (p InstanceDetailPage) Render(ctx context.Context, w io.Writer) error {
	return instanceDetail(p).Render(ctx, w)
}

// InstanceFormPage lists every book. The selected book and status come from
// Values.
type InstanceFormPage struct {
	Title    string           `json:"title"`
	Values   form.Values      `json:"bookinstance"`
	Errors   form.Errors      `json:"errors,omitempty"`
	Books    []catalog.Book   `json:"book_list"`
	Statuses []catalog.Status `json:"statuses"`
}

func (p InstanceFormPage) Render(ctx context.Context, w io.Writer) error {
	return instanceForm(p).Render(ctx, w)
}

// selectedStatus is the status preselected in the form. New copies start in
// maintenance.
func (p InstanceFormPage) selectedStatus() catalog.Status {
	if s := p.Values.Get("status"); s != "" {
		return catalog.Status(s)
	}
	return catalog.StatusMaintenance
}

type InstanceDeletePage struct {
	Title    string                 `json:"title"`
	Instance catalog.InstanceDetail `json:"bookinstance"`
}

func (p InstanceDeletePage) Render(ctx context.Context, w io.Writer) error {
	return instanceDelete(p).Render(ctx, w)
}
