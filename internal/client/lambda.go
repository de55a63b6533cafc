package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/charmbracelet/log"
)

// LambdaInvoker is the subset of the Lambda API the transport needs
type LambdaInvoker interface {
	Invoke(ctx context.Context, params *lambda.InvokeInput, optFns ...func(*lambda.Options)) (*lambda.InvokeOutput, error)
}

// LambdaTransport translates by invoking the backend function directly
// instead of going through its HTTP endpoint. The payload is an API Gateway
// proxy event, so the function sees the same request as over HTTP.
type LambdaTransport struct {
	functionName string
	invoker      LambdaInvoker
	timeout      time.Duration
	logger       *log.Logger
}

// NewLambdaTransport loads the default AWS configuration (environment,
// shared config files, instance role) and creates a transport for functionName.
func NewLambdaTransport(ctx context.Context, functionName string, timeout time.Duration, logger *log.Logger) (*LambdaTransport, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return NewLambdaTransportWithInvoker(lambda.NewFromConfig(cfg), functionName, timeout, logger), nil
}

// NewLambdaTransportWithInvoker creates a transport using invoker
func NewLambdaTransportWithInvoker(invoker LambdaInvoker, functionName string, timeout time.Duration, logger *log.Logger) *LambdaTransport {
	if logger == nil {
		logger = log.Default()
	}
	return &LambdaTransport{
		functionName: functionName,
		invoker:      invoker,
		timeout:      timeout,
		logger:       logger,
	}
}

// Translate invokes the function synchronously and returns the translated text
func (t *LambdaTransport) Translate(ctx context.Context, text string) (string, error) {
	if t.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.timeout)
		defer cancel()
	}

	return t.invoke(ctx, text)
}

func (t *LambdaTransport) invoke(ctx context.Context, text string) (string, error) {
	body, err := json.Marshal(Request{Text: text})
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	payload, err := json.Marshal(events.APIGatewayProxyRequest{
		HTTPMethod: http.MethodPost,
		Path:       "/",
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       string(body),
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode event: %w", err)
	}

	t.logger.Debug("invoking translation function", "function", t.functionName, "bytes", len(body))

	out, err := t.invoker.Invoke(ctx, &lambda.InvokeInput{
		FunctionName: aws.String(t.functionName),
		Payload:      payload,
	})
	if err != nil {
		return "", fmt.Errorf("lambda invoke failed: %w", err)
	}
	if out.FunctionError != nil {
		return "", fmt.Errorf("translation function error %s: %s", aws.ToString(out.FunctionError), string(out.Payload))
	}

	var resp events.APIGatewayProxyResponse
	if err := json.Unmarshal(out.Payload, &resp); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &StatusError{StatusCode: resp.StatusCode, Body: resp.Body}
	}

	var decoded struct {
		TranslatedText *string `json:"translatedText"`
	}
	if err := json.Unmarshal([]byte(resp.Body), &decoded); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if decoded.TranslatedText == nil {
		return "", fmt.Errorf("%w: translatedText missing", ErrMalformedResponse)
	}

	return *decoded.TranslatedText, nil
}
