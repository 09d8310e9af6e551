package photo

import (
	"context"
	"encoding/base64"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/goliatone/go-contacts/pkg/types"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

var pngBytes = append([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), make([]byte, 32)...)

func TestValidate_AcceptsImages(t *testing.T) {
	detected, err := Validate(pngBytes, 0)
	require.NoError(t, err)
	require.Equal(t, "image/png", detected.MIME)
	require.Equal(t, ".png", detected.Extension)

	detected, err = Validate([]byte("GIF89a\x01\x00\x01\x00\x00\x00\x00;"), 0)
	require.NoError(t, err)
	require.Equal(t, "image/gif", detected.MIME)
}

func TestValidate_Rejects(t *testing.T) {
	cases := map[string][]byte{
		"empty":   nil,
		"text":    []byte("hello there, not an image"),
		"too-big": append(append([]byte{}, pngBytes...), make([]byte, 64)...),
	}
	for name, data := range cases {
		_, err := Validate(data, 64)
		require.True(t, types.HasTextCode(err, types.TextCodeInvalidArgument), name)
	}
}

func TestInlineStore_ReturnsDataURL(t *testing.T) {
	ref, err := NewInlineStore(0).Store(context.Background(), types.PhotoUpload{Data: pngBytes})
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(ref, "data:image/png;base64,"))

	decoded, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(ref, "data:image/png;base64,"))
	require.NoError(t, err)
	require.Equal(t, pngBytes, decoded)
}

func TestS3Store_PutsObjectUnderOwnerPrefix(t *testing.T) {
	client := &recordingPutter{}
	objectID := uuid.MustParse("11111111-2222-3333-4444-555555555555")
	owner := uuid.MustParse("aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee")
	store, err := NewS3Store(context.Background(), S3Config{
		Bucket: "photos",
		Region: "eu-west-1",
		Client: client,
		IDGen:  fixedID{id: objectID},
	})
	require.NoError(t, err)

	ref, err := store.Store(context.Background(), types.PhotoUpload{OwnerID: owner, Data: pngBytes})
	require.NoError(t, err)

	key := "contacts/aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee/11111111-2222-3333-4444-555555555555.png"
	require.Equal(t, "https://photos.s3.eu-west-1.amazonaws.com/"+key, ref)
	require.Equal(t, "photos", aws.ToString(client.input.Bucket))
	require.Equal(t, key, aws.ToString(client.input.Key))
	require.Equal(t, "image/png", aws.ToString(client.input.ContentType))

	body, err := io.ReadAll(client.input.Body)
	require.NoError(t, err)
	require.Equal(t, pngBytes, body)
}

func TestS3Store_PublicBaseURLAndErrors(t *testing.T) {
	client := &recordingPutter{err: errors.New("access denied")}
	store, err := NewS3Store(context.Background(), S3Config{
		Bucket:        "photos",
		PublicBaseURL: "https://cdn.example.com/",
		Client:        client,
	})
	require.NoError(t, err)
	require.Equal(t, "https://cdn.example.com", store.baseURL)

	_, err = store.Store(context.Background(), types.PhotoUpload{OwnerID: uuid.New(), Data: pngBytes})
	require.Error(t, err)

	_, err = NewS3Store(context.Background(), S3Config{Client: client})
	require.ErrorIs(t, err, ErrBucketRequired)
}

type recordingPutter struct {
	input *s3.PutObjectInput
	err   error
}

func (r *recordingPutter) PutObject(_ context.Context, params *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	r.input = params
	if r.err != nil {
		return nil, r.err
	}
	return &s3.PutObjectOutput{}, nil
}

type fixedID struct {
	id uuid.UUID
}

func (f fixedID) UUID() uuid.UUID { return f.id }
