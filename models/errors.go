package models

import "fmt"

// Error codes used in log output and internal error handling.
const (
	ErrCodeTimeout       = "CRAWL_TIMEOUT"
	ErrCodeNavigation    = "NAVIGATION_FAILED"
	ErrCodeExtraction    = "EXTRACTION_FAILED"
	ErrCodeBrowserCrash  = "BROWSER_CRASH"
	ErrCodePersistence   = "PERSISTENCE_FAILED"
	ErrCodeInvalidConfig = "INVALID_CONFIG"
)

// CrawlError is the internal error type carrying an error code.
// It implements the error interface and supports error wrapping via Unwrap.
type CrawlError struct {
	Code    string
	Message string
	Err     error // wrapped original error
}

func (e *CrawlError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *CrawlError) Unwrap() error {
	return e.Err
}

// NewCrawlError creates a new CrawlError.
func NewCrawlError(code, message string, err error) *CrawlError {
	return &CrawlError{Code: code, Message: message, Err: err}
}
