package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
)

type fakeInvoker struct {
	inputs []*lambda.InvokeInput
	output *lambda.InvokeOutput
	err    error
}

func (f *fakeInvoker) Invoke(ctx context.Context, params *lambda.InvokeInput, optFns ...func(*lambda.Options)) (*lambda.InvokeOutput, error) {
	f.inputs = append(f.inputs, params)
	if f.err != nil {
		return nil, f.err
	}
	return f.output, nil
}

func proxyResponse(t *testing.T, status int, body string) []byte {
	t.Helper()
	payload, err := json.Marshal(events.APIGatewayProxyResponse{StatusCode: status, Body: body})
	if err != nil {
		t.Fatalf("failed to encode response: %v", err)
	}
	return payload
}

func TestLambdaTransport_Success(t *testing.T) {
	inv := &fakeInvoker{output: &lambda.InvokeOutput{
		StatusCode: 200,
		Payload:    proxyResponse(t, http.StatusOK, `{"translatedText":"Привет, путник.","originalLength":16}`),
	}}
	tr := NewLambdaTransportWithInvoker(inv, "translate", 0, nil)

	got, err := tr.Translate(context.Background(), "Hello, traveler.")
	if err != nil {
		t.Fatalf("Translate failed: %v", err)
	}
	if got != "Привет, путник." {
		t.Errorf("Translate() = %q", got)
	}

	if len(inv.inputs) != 1 {
		t.Fatalf("Expected one invocation, got %d", len(inv.inputs))
	}
	if name := aws.ToString(inv.inputs[0].FunctionName); name != "translate" {
		t.Errorf("FunctionName = %q", name)
	}

	var event events.APIGatewayProxyRequest
	if err := json.Unmarshal(inv.inputs[0].Payload, &event); err != nil {
		t.Fatalf("payload is not a proxy event: %v", err)
	}
	if event.HTTPMethod != http.MethodPost {
		t.Errorf("HTTPMethod = %q", event.HTTPMethod)
	}
	if event.Body != `{"text":"Hello, traveler."}` {
		t.Errorf("Body = %q", event.Body)
	}
}

func TestLambdaTransport_Failures(t *testing.T) {
	tests := []struct {
		name    string
		output  *lambda.InvokeOutput
		err     error
		wantErr error
	}{
		{
			name: "invoke error",
			err:  errors.New("access denied"),
		},
		{
			name: "function error",
			output: &lambda.InvokeOutput{
				FunctionError: aws.String("Unhandled"),
				Payload:       []byte(`{"errorMessage":"boom"}`),
			},
		},
		{
			name:   "non-2xx status",
			output: &lambda.InvokeOutput{Payload: proxyResponse(t, 500, `{"error":"Ошибка перевода"}`)},
		},
		{
			name:    "payload not json",
			output:  &lambda.InvokeOutput{Payload: []byte("nope")},
			wantErr: ErrMalformedResponse,
		},
		{
			name:    "body not json",
			output:  &lambda.InvokeOutput{Payload: proxyResponse(t, 200, "nope")},
			wantErr: ErrMalformedResponse,
		},
		{
			name:    "body without translation",
			output:  &lambda.InvokeOutput{Payload: proxyResponse(t, 200, `{}`)},
			wantErr: ErrMalformedResponse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := &fakeInvoker{output: tt.output, err: tt.err}
			tr := NewLambdaTransportWithInvoker(inv, "translate", 0, nil)

			got, err := tr.Translate(context.Background(), "Hello")
			if err == nil {
				t.Fatalf("Expected error, got %q", got)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestLambdaTransport_StatusError(t *testing.T) {
	inv := &fakeInvoker{output: &lambda.InvokeOutput{Payload: proxyResponse(t, 405, `{"error":"Метод не поддерживается"}`)}}
	tr := NewLambdaTransportWithInvoker(inv, "translate", 0, nil)

	_, err := tr.Translate(context.Background(), "Hello")

	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("Expected *StatusError, got %v", err)
	}
	if statusErr.StatusCode != 405 {
		t.Errorf("StatusCode = %d, want 405", statusErr.StatusCode)
	}
}

func TestLambdaTransport_EveryCallInvokes(t *testing.T) {
	inv := &fakeInvoker{err: errors.New("throttled")}
	tr := NewLambdaTransportWithInvoker(inv, "translate", 0, nil)

	for i := 0; i < 5; i++ {
		if _, err := tr.Translate(context.Background(), "Hello"); err == nil {
			t.Fatalf("call %d: expected error", i)
		}
	}

	inv.err = nil
	inv.output = &lambda.InvokeOutput{Payload: proxyResponse(t, http.StatusOK, `{"translatedText":"Привет"}`)}

	got, err := tr.Translate(context.Background(), "Hello")
	if err != nil {
		t.Fatalf("Translate after recovery failed: %v", err)
	}
	if got != "Привет" {
		t.Errorf("Translate() = %q", got)
	}
	if len(inv.inputs) != 6 {
		t.Errorf("Expected one invocation per call (6), got %d", len(inv.inputs))
	}
}
