package catalog

import (
	"context"
	"fmt"
	"io"
	"net/url"

	"go-sweet-storefront/internal/httpclient"
	"go-sweet-storefront/internal/pkg/apperror"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

const sweetsPath = "/api/sweets"

type Service interface {
	// Browsing
	List(ctx context.Context) ([]Sweet, error)
	Search(ctx context.Context, query string) ([]Sweet, error)

	// Admin inventory management
	Create(ctx context.Context, req CreateSweetRequest) (Sweet, error)
	Update(ctx context.Context, id string, req UpdateSweetRequest) (Sweet, error)
	Delete(ctx context.Context, id string) error
	Restock(ctx context.Context, id string, quantity int) error
	UploadImage(ctx context.Context, id, filename string, r io.Reader) error

	// Purchase decrements backend stock for one sweet.
	Purchase(ctx context.Context, id string, quantity int) error
}

type service struct {
	client   *httpclient.Client
	validate *validator.Validate
	logger   *zap.Logger
}

type Deps struct {
	Client *httpclient.Client
	Logger *zap.Logger
}

func NewService(deps Deps) Service {
	if deps.Client == nil {
		panic("http client cannot be nil")
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}

	return &service{
		client:   deps.Client,
		validate: validator.New(),
		logger:   deps.Logger,
	}
}

func (s *service) List(ctx context.Context) ([]Sweet, error) {
	var sweets []Sweet
	if err := s.client.Get(ctx, sweetsPath, &sweets); err != nil {
		return nil, err
	}
	return sweets, nil
}

func (s *service) Search(ctx context.Context, query string) ([]Sweet, error) {
	var sweets []Sweet
	path := sweetsPath + "/search?q=" + url.QueryEscape(query)
	if err := s.client.Get(ctx, path, &sweets); err != nil {
		return nil, err
	}
	return sweets, nil
}

func (s *service) Create(ctx context.Context, req CreateSweetRequest) (Sweet, error) {
	if err := s.validate.Struct(req); err != nil {
		return Sweet{}, apperror.New(apperror.CodeInvalidInput, err.Error(), 0)
	}
	if req.Price.IsNegative() {
		return Sweet{}, apperror.New(apperror.CodeInvalidInput, "Price cannot be negative", 0)
	}

	var sweet Sweet
	if err := s.client.Post(ctx, sweetsPath, req, &sweet); err != nil {
		return Sweet{}, err
	}
	s.logger.Info("sweet created", zap.String("sweet_id", sweet.ID), zap.String("name", sweet.Name))
	return sweet, nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateSweetRequest) (Sweet, error) {
	if id == "" {
		return Sweet{}, ErrInvalidSweetID
	}
	if err := s.validate.Struct(req); err != nil {
		return Sweet{}, apperror.New(apperror.CodeInvalidInput, err.Error(), 0)
	}
	if req.Price.IsNegative() {
		return Sweet{}, apperror.New(apperror.CodeInvalidInput, "Price cannot be negative", 0)
	}

	var sweet Sweet
	if err := s.client.Put(ctx, fmt.Sprintf("%s/%s", sweetsPath, id), req, &sweet); err != nil {
		return Sweet{}, err
	}
	return sweet, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrInvalidSweetID
	}
	return s.client.Delete(ctx, fmt.Sprintf("%s/%s", sweetsPath, id))
}

func (s *service) Purchase(ctx context.Context, id string, quantity int) error {
	if id == "" {
		return ErrInvalidSweetID
	}
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	path := fmt.Sprintf("%s/%s/purchase", sweetsPath, id)
	return s.client.Post(ctx, path, QuantityRequest{Quantity: quantity}, nil)
}

func (s *service) Restock(ctx context.Context, id string, quantity int) error {
	if id == "" {
		return ErrInvalidSweetID
	}
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	path := fmt.Sprintf("%s/%s/restock", sweetsPath, id)
	return s.client.Post(ctx, path, QuantityRequest{Quantity: quantity}, nil)
}

func (s *service) UploadImage(ctx context.Context, id, filename string, r io.Reader) error {
	if id == "" {
		return ErrInvalidSweetID
	}
	path := fmt.Sprintf("%s/%s/upload-image", sweetsPath, id)
	// backend expects the multipart field to be named "file"
	return s.client.PostMultipart(ctx, path, "file", filename, r, nil)
}
