package insight

import (
	"fmt"
	"io/ioutil"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker"
)

type insight struct {
	apiURL string
	client *http.Client
	cb     *gobreaker.CircuitBreaker
}

// NewService returns a new insight client as a Service interface. The
// requestTimeout is expressed in milliseconds. All requests go through a
// circuit breaker so that a flaky explorer does not get hammered.
func NewService(apiURL string, requestTimeout int) (Service, error) {
	service := &insight{
		apiURL: strings.TrimSuffix(apiURL, "/"),
		client: &http.Client{
			Timeout: time.Duration(requestTimeout) * time.Millisecond,
		},
		cb: newCircuitBreaker(),
	}

	if err := service.healthCheck(); err != nil {
		return nil, fmt.Errorf("health check: %w", err)
	}

	return service, nil
}

func newCircuitBreaker() *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name: "insight",
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			ratio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests > 10 && ratio >= 0.6
		},
	})
}

func (i *insight) healthCheck() error {
	url := fmt.Sprintf("%s/status?q=getBestBlockHash", i.apiURL)
	status, resp, err := i.newHTTPRequest("GET", url, "", nil)
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return fmt.Errorf(resp)
	}
	return nil
}

func (i *insight) newHTTPRequest(
	method, url, body string, headers map[string]string,
) (int, string, error) {
	result, err := i.cb.Execute(func() (interface{}, error) {
		req, err := http.NewRequest(method, url, strings.NewReader(body))
		if err != nil {
			return nil, err
		}
		for key, value := range headers {
			req.Header.Set(key, value)
		}

		resp, err := i.client.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		data, err := ioutil.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}

		return httpResponse{resp.StatusCode, string(data)}, nil
	})
	if err != nil {
		return 0, "", err
	}

	resp := result.(httpResponse)
	return resp.status, resp.body, nil
}

type httpResponse struct {
	status int
	body   string
}
