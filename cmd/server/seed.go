package main

import (
	"errors"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/VitaminP8/yatube/internal/group"
	"github.com/VitaminP8/yatube/internal/storage"
)

// seedGroups заводит группы из списка вида "slug:Название,slug2:Название 2".
// Уже существующие группы пропускаются.
func seedGroups(groups group.GroupStorage, raw string) error {
	for _, item := range strings.Split(raw, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}

		slug, title, ok := strings.Cut(item, ":")
		slug, title = strings.TrimSpace(slug), strings.TrimSpace(title)
		if !ok || slug == "" || title == "" {
			return fmt.Errorf("bad group %q, want slug:title", item)
		}

		_, err := groups.CreateGroup(title, slug, "")
		if errors.Is(err, storage.ErrAlreadyExists) {
			continue
		}
		if err != nil {
			return err
		}
		log.WithField("slug", slug).Info("group seeded")
	}
	return nil
}
