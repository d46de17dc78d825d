package observability

import (
	"net/http"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-xray-sdk-go/instrumentation/awsv2"
	"github.com/aws/aws-xray-sdk-go/xray"
)

// InstrumentAWSClients attaches X-Ray tracing to every AWS SDK client built
// from the given config.
func InstrumentAWSClients(cfg *aws.Config) {
	awsv2.AWSV2Instrumentor(&cfg.APIOptions)
}

// TraceHandler wraps an HTTP handler so each request runs inside an X-Ray
// segment named after the service.
func TraceHandler(serviceName string, h http.Handler) http.Handler {
	return xray.Handler(xray.NewFixedSegmentNamer(serviceName), h)
}
