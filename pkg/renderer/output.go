package renderer

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
)

// UploadTimeout bounds a single S3 upload
const UploadTimeout = 30 * time.Second

// Format is an image encoding
type Format int

const (
	// FormatPPM is the plain-text P3 portable pixmap
	FormatPPM Format = iota
	// FormatPNG is a PNG image
	FormatPNG
)

// ContentType returns the MIME type of the format
func (f Format) ContentType() string {
	if f == FormatPNG {
		return "image/png"
	}
	return "image/x-portable-pixmap"
}

// FormatForPath picks the encoding from a destination's extension; anything but .png is PPM
func FormatForPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".png") {
		return FormatPNG
	}
	return FormatPPM
}

// WritePPM writes img as a plain P3 pixmap: a header with width, height and 255,
// then one "r g b" line per pixel, top row first
func WritePPM(w io.Writer, img image.Image) error {
	bounds := img.Bounds()
	bw := bufio.NewWriter(w)

	if _, err := fmt.Fprintf(bw, "P3\n%d %d\n255\n", bounds.Dx(), bounds.Dy()); err != nil {
		return err
	}
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			if _, err := fmt.Fprintf(bw, "%d %d %d\n", r>>8, g>>8, b>>8); err != nil {
				return err
			}
		}
	}
	return bw.Flush()
}

// Encode writes img to w in the given format
func Encode(w io.Writer, img image.Image, format Format) error {
	switch format {
	case FormatPNG:
		return png.Encode(w, img)
	default:
		return WritePPM(w, img)
	}
}

// Sink is a destination for an encoded image
type Sink interface {
	Write(ctx context.Context, data []byte, contentType string) error
	String() string
}

// FileSink writes to a local file
type FileSink struct {
	Path string
}

func (s *FileSink) Write(ctx context.Context, data []byte, contentType string) error {
	if dir := filepath.Dir(s.Path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(s.Path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", s.Path, err)
	}
	return nil
}

func (s *FileSink) String() string { return s.Path }

// WriterSink streams to an io.Writer such as stdout
type WriterSink struct {
	W io.Writer
}

func (s *WriterSink) Write(ctx context.Context, data []byte, contentType string) error {
	_, err := s.W.Write(data)
	return err
}

func (s *WriterSink) String() string { return "-" }

// S3Config holds connection settings for S3-compatible storage
type S3Config struct {
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
}

// S3ConfigFromEnv reads S3_ENDPOINT, S3_REGION, S3_ACCESS_KEY and S3_SECRET_KEY
func S3ConfigFromEnv() S3Config {
	return S3Config{
		Endpoint:  os.Getenv("S3_ENDPOINT"),
		Region:    os.Getenv("S3_REGION"),
		AccessKey: os.Getenv("S3_ACCESS_KEY"),
		SecretKey: os.Getenv("S3_SECRET_KEY"),
	}
}

// S3Sink uploads to a bucket key
type S3Sink struct {
	Client s3iface.S3API
	Bucket string
	Key    string
}

// NewS3Sink creates a sink backed by a path-style S3 client
func NewS3Sink(cfg S3Config, bucket, key string) (*S3Sink, error) {
	awsConfig := &aws.Config{
		Region:           aws.String(cfg.Region),
		S3ForcePathStyle: aws.Bool(true),
	}
	if cfg.Endpoint != "" {
		awsConfig.Endpoint = aws.String(cfg.Endpoint)
	}
	if cfg.AccessKey != "" {
		awsConfig.Credentials = credentials.NewStaticCredentials(cfg.AccessKey, cfg.SecretKey, "")
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 session: %w", err)
	}

	return &S3Sink{Client: s3.New(sess), Bucket: bucket, Key: key}, nil
}

func (s *S3Sink) Write(ctx context.Context, data []byte, contentType string) error {
	ctx, cancel := context.WithTimeout(ctx, UploadTimeout)
	defer cancel()

	_, err := s.Client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.Bucket),
		Key:           aws.String(s.Key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", s, err)
	}
	return nil
}

func (s *S3Sink) String() string { return "s3://" + s.Bucket + "/" + s.Key }

// ErrInvalidDestination is returned for output destinations that cannot be parsed
var ErrInvalidDestination = errors.New("invalid output destination")

// NewSink resolves a destination: "-" for stdout, "s3://bucket/key", or a file path
func NewSink(dest string, stdout io.Writer, s3cfg S3Config) (Sink, error) {
	switch {
	case dest == "":
		return nil, fmt.Errorf("empty path: %w", ErrInvalidDestination)
	case dest == "-":
		return &WriterSink{W: stdout}, nil
	case strings.HasPrefix(dest, "s3://"):
		bucket, key, found := strings.Cut(strings.TrimPrefix(dest, "s3://"), "/")
		if !found || bucket == "" || key == "" {
			return nil, fmt.Errorf("%s: expected s3://bucket/key: %w", dest, ErrInvalidDestination)
		}
		return NewS3Sink(s3cfg, bucket, key)
	default:
		return &FileSink{Path: dest}, nil
	}
}

// Save encodes the whole image in memory before handing it to the sink, so an
// encoding failure never leaves partial output. A failing sink may still leave a
// truncated file.
func Save(ctx context.Context, img image.Image, format Format, sink Sink) error {
	var buf bytes.Buffer
	if err := Encode(&buf, img, format); err != nil {
		return fmt.Errorf("failed to encode image: %w", err)
	}
	return sink.Write(ctx, buf.Bytes(), format.ContentType())
}
