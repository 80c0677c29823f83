package out

import (
	"context"
	"net/http"

	"climblog/internal/modules/gym/domain"
	gymout "climblog/internal/modules/gym/port/out"
	"climblog/internal/platform/restclient"
)

type HTTPCatalog struct {
	client *restclient.Client
}

func NewHTTPCatalog(client *restclient.Client) gymout.Catalog {
	return &HTTPCatalog{client: client}
}

// wireGym is the backend shape: location doubles as the gym id.
type wireGym struct {
	Name     string `json:"name"`
	Location string `json:"location"`
}

func (c *HTTPCatalog) List(ctx context.Context) ([]domain.Gym, error) {
	var payload []wireGym
	if err := c.client.Do(ctx, restclient.Request{Method: http.MethodGet, Path: "/gyms/", Out: &payload}); err != nil {
		return nil, err
	}
	gyms := make([]domain.Gym, 0, len(payload))
	for _, g := range payload {
		gyms = append(gyms, domain.Gym{ID: g.Location, Name: g.Name})
	}
	return gyms, nil
}

func (c *HTTPCatalog) Create(ctx context.Context, gym domain.Gym) (domain.Gym, error) {
	var out wireGym
	err := c.client.Do(ctx, restclient.Request{
		Method: http.MethodPost,
		Path:   "/gyms/",
		Body:   wireGym{Name: gym.Name, Location: gym.ID},
		Out:    &out,
	})
	if err != nil {
		return domain.Gym{}, err
	}
	return domain.Gym{ID: out.Location, Name: out.Name}, nil
}
