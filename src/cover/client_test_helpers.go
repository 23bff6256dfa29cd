package cover

import "net/http"

// SetAPIURLTemplate sets the summary API URL template. It must contain two
// %s verbs, for the language and for the page title. Only useful for tests.
func (c *SummaryClient) SetAPIURLTemplate(template string) {
	c.urlTemplate = template
}

// SetHTTPClient sets the HTTP client used for API requests. Only useful for
// tests.
func (c *SummaryClient) SetHTTPClient(client *http.Client) {
	c.httpClient = client
}
