package usecase

import (
	"encoding/xml"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/zotdav/pkg/domain/model"
)

type multistatus struct {
	XMLName   xml.Name   `xml:"multistatus"`
	Responses []response `xml:"response"`
}

type response struct {
	Href     string     `xml:"href"`
	Propstat []propstat `xml:"propstat"`
}

type propstat struct {
	Prop   prop   `xml:"prop"`
	Status string `xml:"status"`
}

type prop struct {
	ResourceType  resourceType `xml:"resourcetype"`
	LastModified  string       `xml:"getlastmodified"`
	ETag          string       `xml:"getetag"`
	ContentType   string       `xml:"getcontenttype"`
	ContentLength int64        `xml:"getcontentlength"`
}

type resourceType struct {
	Collection *struct{} `xml:"collection"`
}

// ParseMultistatus decodes a PROPFIND response body. Only propstat blocks
// with a 200 status contribute properties.
func ParseMultistatus(body string) ([]model.RemoteResource, error) {
	var ms multistatus
	if err := xml.Unmarshal([]byte(body), &ms); err != nil {
		return nil, goerr.Wrap(err, "failed to parse PROPFIND multistatus")
	}

	resources := make([]model.RemoteResource, 0, len(ms.Responses))
	for _, r := range ms.Responses {
		res := model.RemoteResource{Href: strings.TrimSpace(r.Href)}
		for _, ps := range r.Propstat {
			if ps.Status != "" && !strings.Contains(ps.Status, " 200") {
				continue
			}
			res.IsCollection = res.IsCollection || ps.Prop.ResourceType.Collection != nil
			if ps.Prop.ContentLength != 0 {
				res.ContentLength = ps.Prop.ContentLength
			}
			if ps.Prop.ContentType != "" {
				res.ContentType = ps.Prop.ContentType
			}
			if ps.Prop.ETag != "" {
				res.ETag = strings.Trim(ps.Prop.ETag, `"`)
			}
			if ps.Prop.LastModified != "" {
				res.LastModified = ps.Prop.LastModified
			}
		}
		resources = append(resources, res)
	}

	return resources, nil
}
