// Package todov1 describes the todo.v1.TodoService wire contract. Messages
// travel as protobuf well-known types (structpb.Struct, wrapperspb.Int64Value,
// emptypb.Empty); this package converts them to and from Go structs.
package todov1

import (
	"errors"
	"fmt"
	"math"

	"github.com/dmitrijs2005/gotodo/internal/common"
	"google.golang.org/protobuf/types/known/structpb"
)

// Full method names.
const (
	CreateMethod  = "/" + common.TodoServiceName + "/Create"
	FindAllMethod = "/" + common.TodoServiceName + "/FindAll"
	FindOneMethod = "/" + common.TodoServiceName + "/FindOne"
	UpdateMethod  = "/" + common.TodoServiceName + "/Update"
	RemoveMethod  = "/" + common.TodoServiceName + "/Remove"
)

// maxExactInt is the largest integer a structpb number holds exactly.
const maxExactInt = 1 << 53

var ErrMalformed = errors.New("malformed message")

type Todo struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Complete    bool   `json:"complete"`
}

type CreateRequest struct {
	Title       string `json:"title" validate:"required,min=3,max=100"`
	Description string `json:"description" validate:"required,min=5,max=10000"`
}

type FindAllRequest struct {
	Title *string `json:"title"`
}

type UpdateRequest struct {
	ID          int64   `json:"id"`
	Title       *string `json:"title" validate:"omitnil,min=3,max=100"`
	Description *string `json:"description" validate:"omitnil,min=5,max=10000"`
	Complete    *bool   `json:"complete"`
}

func (t *Todo) Struct() *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"id":          structpb.NewNumberValue(float64(t.ID)),
		"title":       structpb.NewStringValue(t.Title),
		"description": structpb.NewStringValue(t.Description),
		"complete":    structpb.NewBoolValue(t.Complete),
	}}
}

func TodoFromStruct(s *structpb.Struct) (*Todo, error) {
	f := fields{s}
	t := &Todo{}
	var err error
	if t.ID, err = f.requiredInt("id"); err != nil {
		return nil, err
	}
	if t.Title, err = f.requiredString("title"); err != nil {
		return nil, err
	}
	if t.Description, err = f.requiredString("description"); err != nil {
		return nil, err
	}
	if t.Complete, err = f.requiredBool("complete"); err != nil {
		return nil, err
	}
	return t, nil
}

// ListStruct wraps todos as {"todos": [...]}.
func ListStruct(todos []*Todo) *structpb.Struct {
	values := make([]*structpb.Value, 0, len(todos))
	for _, t := range todos {
		values = append(values, structpb.NewStructValue(t.Struct()))
	}
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"todos": structpb.NewListValue(&structpb.ListValue{Values: values}),
	}}
}

func ListFromStruct(s *structpb.Struct) ([]*Todo, error) {
	v, ok := s.GetFields()["todos"]
	if !ok {
		return []*Todo{}, nil
	}
	list, ok := v.GetKind().(*structpb.Value_ListValue)
	if !ok {
		return nil, fmt.Errorf("%w: todos must be a list", ErrMalformed)
	}

	out := make([]*Todo, 0, len(list.ListValue.GetValues()))
	for i, item := range list.ListValue.GetValues() {
		st, ok := item.GetKind().(*structpb.Value_StructValue)
		if !ok {
			return nil, fmt.Errorf("%w: todos[%d] must be an object", ErrMalformed, i)
		}
		t, err := TodoFromStruct(st.StructValue)
		if err != nil {
			return nil, fmt.Errorf("todos[%d]: %w", i, err)
		}
		out = append(out, t)
	}
	return out, nil
}

func (r *CreateRequest) Struct() *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"title":       structpb.NewStringValue(r.Title),
		"description": structpb.NewStringValue(r.Description),
	}}
}

// CreateRequestFromStruct reads a create request; absent fields stay empty
// and are left for validation to reject.
func CreateRequestFromStruct(s *structpb.Struct) (*CreateRequest, error) {
	f := fields{s}
	r := &CreateRequest{}
	title, err := f.optionalString("title")
	if err != nil {
		return nil, err
	}
	description, err := f.optionalString("description")
	if err != nil {
		return nil, err
	}
	if title != nil {
		r.Title = *title
	}
	if description != nil {
		r.Description = *description
	}
	return r, nil
}

func (r *FindAllRequest) Struct() *structpb.Struct {
	s := &structpb.Struct{Fields: map[string]*structpb.Value{}}
	if r.Title != nil {
		s.Fields["title"] = structpb.NewStringValue(*r.Title)
	}
	return s
}

func FindAllRequestFromStruct(s *structpb.Struct) (*FindAllRequest, error) {
	title, err := fields{s}.optionalString("title")
	if err != nil {
		return nil, err
	}
	return &FindAllRequest{Title: title}, nil
}

func (r *UpdateRequest) Struct() *structpb.Struct {
	s := &structpb.Struct{Fields: map[string]*structpb.Value{
		"id": structpb.NewNumberValue(float64(r.ID)),
	}}
	if r.Title != nil {
		s.Fields["title"] = structpb.NewStringValue(*r.Title)
	}
	if r.Description != nil {
		s.Fields["description"] = structpb.NewStringValue(*r.Description)
	}
	if r.Complete != nil {
		s.Fields["complete"] = structpb.NewBoolValue(*r.Complete)
	}
	return s
}

// UpdateRequestFromStruct reads an update request. A field holding null is
// treated as absent.
func UpdateRequestFromStruct(s *structpb.Struct) (*UpdateRequest, error) {
	f := fields{s}
	r := &UpdateRequest{}
	var err error
	if r.ID, err = f.requiredInt("id"); err != nil {
		return nil, err
	}
	if r.Title, err = f.optionalString("title"); err != nil {
		return nil, err
	}
	if r.Description, err = f.optionalString("description"); err != nil {
		return nil, err
	}
	if r.Complete, err = f.optionalBool("complete"); err != nil {
		return nil, err
	}
	return r, nil
}

type fields struct {
	s *structpb.Struct
}

// lookup returns the value of name, or nil when it is absent or null.
func (f fields) lookup(name string) *structpb.Value {
	v, ok := f.s.GetFields()[name]
	if !ok {
		return nil
	}
	if _, isNull := v.GetKind().(*structpb.Value_NullValue); isNull {
		return nil
	}
	return v
}

func (f fields) optionalString(name string) (*string, error) {
	v := f.lookup(name)
	if v == nil {
		return nil, nil
	}
	s, ok := v.GetKind().(*structpb.Value_StringValue)
	if !ok {
		return nil, fmt.Errorf("%w: %s must be a string", ErrMalformed, name)
	}
	return &s.StringValue, nil
}

func (f fields) requiredString(name string) (string, error) {
	s, err := f.optionalString(name)
	if err != nil {
		return "", err
	}
	if s == nil {
		return "", fmt.Errorf("%w: %s is missing", ErrMalformed, name)
	}
	return *s, nil
}

func (f fields) optionalBool(name string) (*bool, error) {
	v := f.lookup(name)
	if v == nil {
		return nil, nil
	}
	b, ok := v.GetKind().(*structpb.Value_BoolValue)
	if !ok {
		return nil, fmt.Errorf("%w: %s must be a boolean", ErrMalformed, name)
	}
	return &b.BoolValue, nil
}

func (f fields) requiredBool(name string) (bool, error) {
	b, err := f.optionalBool(name)
	if err != nil {
		return false, err
	}
	if b == nil {
		return false, fmt.Errorf("%w: %s is missing", ErrMalformed, name)
	}
	return *b, nil
}

func (f fields) requiredInt(name string) (int64, error) {
	v := f.lookup(name)
	if v == nil {
		return 0, fmt.Errorf("%w: %s is missing", ErrMalformed, name)
	}
	n, ok := v.GetKind().(*structpb.Value_NumberValue)
	if !ok {
		return 0, fmt.Errorf("%w: %s must be a number", ErrMalformed, name)
	}
	if n.NumberValue != math.Trunc(n.NumberValue) || math.Abs(n.NumberValue) > maxExactInt {
		return 0, fmt.Errorf("%w: %s must be an integer", ErrMalformed, name)
	}
	return int64(n.NumberValue), nil
}
