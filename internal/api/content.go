package api

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"

	"github.com/alextreichler/pharmadmin/internal/models"
)

// GetSettings reads the site settings singleton.
func (c *Client) GetSettings(ctx context.Context, cred Credential) (models.SiteSettings, error) {
	var out struct {
		Settings models.SiteSettings `json:"settings"`
	}
	err := c.getJSON(ctx, &cred, "/api/order/settings", &out)
	return out.Settings, err
}

func (c *Client) UpdateSettings(ctx context.Context, cred Credential, s models.SiteSettings) (string, error) {
	var out envelope
	err := c.postJSON(ctx, &cred, "/api/order/settings/update", s, &out)
	return out.Message, err
}

// ListContacts returns every contact message; the endpoint does not paginate.
func (c *Client) ListContacts(ctx context.Context, cred Credential) ([]models.Contact, error) {
	var out struct {
		Contacts []models.Contact `json:"contacts"`
	}
	if err := c.postJSON(ctx, &cred, "/api/contact/list", struct{}{}, &out); err != nil {
		return nil, err
	}
	return out.Contacts, nil
}

func (c *Client) UpdateContactStatus(ctx context.Context, cred Credential, id, status string) (string, error) {
	var out envelope
	err := c.postJSON(ctx, &cred, "/api/contact/update-status", map[string]string{
		"contactId": id,
		"status":    status,
	}, &out)
	return out.Message, err
}

func (c *Client) DeleteContact(ctx context.Context, cred Credential, id string) (string, error) {
	var out envelope
	err := c.postJSON(ctx, &cred, "/api/contact/delete", map[string]string{"contactId": id}, &out)
	return out.Message, err
}

// BlogInput is the create/update payload for a blog post.
type BlogInput struct {
	Title       string `json:"title"`
	Author      string `json:"author"`
	Content     string `json:"content"`
	Image       string `json:"image"`
	IsPublished bool   `json:"isPublished"`
}

// ListBlogs fetches one page of the admin blog listing.
func (c *Client) ListBlogs(ctx context.Context, cred Credential, page, limit int) ([]models.Blog, models.BlogPagination, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))
	var out struct {
		Blogs      []models.Blog         `json:"blogs"`
		Pagination models.BlogPagination `json:"pagination"`
	}
	if err := c.getJSON(ctx, &cred, "/api/blog/admin/list?"+q.Encode(), &out); err != nil {
		return nil, models.BlogPagination{}, err
	}
	return out.Blogs, out.Pagination, nil
}

func (c *Client) CreateBlog(ctx context.Context, cred Credential, in BlogInput) (string, error) {
	var out envelope
	err := c.postJSON(ctx, &cred, "/api/blog/create", in, &out)
	return out.Message, err
}

func (c *Client) UpdateBlog(ctx context.Context, cred Credential, id string, in BlogInput) (string, error) {
	var out envelope
	err := c.sendJSON(ctx, &cred, http.MethodPut, "/api/blog/update/"+url.PathEscape(id), in, &out)
	return out.Message, err
}

func (c *Client) DeleteBlog(ctx context.Context, cred Credential, id string) (string, error) {
	var out envelope
	err := c.sendJSON(ctx, &cred, http.MethodDelete, "/api/blog/delete/"+url.PathEscape(id), nil, &out)
	return out.Message, err
}

// UploadImage stores an image with the backend and returns its public URL.
func (c *Client) UploadImage(ctx context.Context, cred Credential, img Image) (string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if err := writeFile(mw, "image", img); err != nil {
		return "", fmt.Errorf("upload image: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("upload image: %w", err)
	}
	var out struct {
		URL string `json:"url"`
	}
	if err := c.do(ctx, &cred, http.MethodPost, "/api/upload-image/add", &buf, mw.FormDataContentType(), &out); err != nil {
		return "", err
	}
	if out.URL == "" {
		return "", &Error{Kind: KindApplication, Op: "POST /api/upload-image/add", Message: "Failed to upload image"}
	}
	return out.URL, nil
}

// AdminLogin exchanges admin credentials for a session token.
func (c *Client) AdminLogin(ctx context.Context, email, password string) (Credential, error) {
	var out struct {
		Token string `json:"token"`
	}
	err := c.postJSON(ctx, nil, "/api/user/admin", map[string]string{
		"email":    email,
		"password": password,
	}, &out)
	if err != nil {
		return Credential{}, err
	}
	return Credential{Token: out.Token}, nil
}
