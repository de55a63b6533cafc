// Package client sends source text to the translation endpoint and returns
// the translated text. Client talks plain HTTP to a fixed URL;
// LambdaTransport invokes the backend function through the AWS Lambda API.
package client
