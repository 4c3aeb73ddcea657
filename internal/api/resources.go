package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Leochin1206/GeraApp/internal/models"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

type NewUser struct {
	Name     string `json:"nome" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type GeneratorInput struct {
	Name  string  `json:"nome" validate:"required,max=120"`
	Photo *string `json:"foto,omitempty"`
}

type EventInput struct {
	Location    string  `json:"local" validate:"required"`
	Description string  `json:"descricao" validate:"required"`
	Date        string  `json:"data" validate:"required,datetime=2006-01-02"`
	Operator    string  `json:"operador" validate:"required"`
	Responsible string  `json:"responsavel" validate:"required"`
	Phone       *string `json:"fone_resp,omitempty"`
	GeneratorID int     `json:"id_gerador" validate:"gt=0"`
}

func (c *Client) ListGenerators(ctx context.Context) ([]models.Generator, error) {
	generators, err := listAll[models.Generator](ctx, c, "/geradores/")
	if err != nil {
		return nil, fmt.Errorf("listing generators: %w", err)
	}
	return generators, nil
}

func (c *Client) CreateGenerator(ctx context.Context, in GeneratorInput) (*models.Generator, error) {
	if err := validate.Struct(in); err != nil {
		return nil, fmt.Errorf("invalid generator: %w", err)
	}

	var g models.Generator
	if err := c.do(ctx, http.MethodPost, "/geradores/", in, &g); err != nil {
		return nil, fmt.Errorf("creating generator: %w", err)
	}
	return &g, nil
}

func (c *Client) UpdateGenerator(ctx context.Context, id int, in GeneratorInput) (*models.Generator, error) {
	if err := validate.Struct(in); err != nil {
		return nil, fmt.Errorf("invalid generator: %w", err)
	}

	var g models.Generator
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/geradores/%d", id), in, &g); err != nil {
		return nil, fmt.Errorf("updating generator %d: %w", id, err)
	}
	return &g, nil
}

func (c *Client) DeleteGenerator(ctx context.Context, id int) error {
	if err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/geradores/%d", id), nil, nil); err != nil {
		return fmt.Errorf("deleting generator %d: %w", id, err)
	}
	return nil
}

func (c *Client) ListEvents(ctx context.Context) ([]models.Event, error) {
	events, err := listAll[models.Event](ctx, c, "/eventos/")
	if err != nil {
		return nil, fmt.Errorf("listing events: %w", err)
	}
	return events, nil
}

func (c *Client) CreateEvent(ctx context.Context, in EventInput) (*models.Event, error) {
	if err := validate.Struct(in); err != nil {
		return nil, fmt.Errorf("invalid event: %w", err)
	}

	var e models.Event
	if err := c.do(ctx, http.MethodPost, "/eventos/", in, &e); err != nil {
		return nil, fmt.Errorf("creating event: %w", err)
	}
	return &e, nil
}

func (c *Client) UpdateEvent(ctx context.Context, id int, in EventInput) (*models.Event, error) {
	if err := validate.Struct(in); err != nil {
		return nil, fmt.Errorf("invalid event: %w", err)
	}

	var e models.Event
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/eventos/%d", id), in, &e); err != nil {
		return nil, fmt.Errorf("updating event %d: %w", id, err)
	}
	return &e, nil
}

func (c *Client) DeleteEvent(ctx context.Context, id int) error {
	if err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/eventos/%d", id), nil, nil); err != nil {
		return fmt.Errorf("deleting event %d: %w", id, err)
	}
	return nil
}
