// internal/services/translation_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type TranslationTestSuite struct {
	suite.Suite
	db  *gorm.DB
	svc *TranslationService
}

func (s *TranslationTestSuite) SetupTest() {
	s.db = newTestDB(s.T())
	s.svc = NewTranslationService(s.db)
}

func TestTranslationTestSuite(t *testing.T) {
	suite.Run(t, new(TranslationTestSuite))
}

func (s *TranslationTestSuite) TestUpsertCreatesThenUpdates() {
	created, err := s.svc.UpsertTranslation(&UpsertTranslationRequest{
		Key:      "add_to_cart",
		Category: "buttons",
		English:  "Buy Now",
		Tamil:    "இப்போது வாங்கவும்",
	})
	require.NoError(s.T(), err)

	updated, err := s.svc.UpsertTranslation(&UpsertTranslationRequest{
		Key:      "add_to_cart",
		Category: "buttons",
		English:  "Order Now",
	})
	require.NoError(s.T(), err)
	assert.Equal(s.T(), created.ID, updated.ID)
	assert.Equal(s.T(), "Order Now", updated.English)

	all, err := s.svc.ListTranslations("")
	require.NoError(s.T(), err)
	assert.Len(s.T(), all, 1)
}

func (s *TranslationTestSuite) TestSameKeyAcrossCategories() {
	_, err := s.svc.UpsertTranslation(&UpsertTranslationRequest{
		Key:      "title",
		Category: "home",
		English:  "Welcome",
	})
	require.NoError(s.T(), err)

	_, err = s.svc.UpsertTranslation(&UpsertTranslationRequest{
		Key:      "title",
		Category: "checkout",
		English:  "Your Order",
	})
	require.NoError(s.T(), err)

	all, err := s.svc.ListTranslations("")
	require.NoError(s.T(), err)
	assert.Len(s.T(), all, 2)

	checkout, err := s.svc.ListTranslations("checkout")
	require.NoError(s.T(), err)
	assert.Len(s.T(), checkout, 1)
}

func (s *TranslationTestSuite) TestDictionaryFallsBackToEnglish() {
	_, err := s.svc.UpsertTranslation(&UpsertTranslationRequest{
		Key:      "buy",
		Category: "buttons",
		English:  "Buy",
		Tamil:    "வாங்கு",
	})
	require.NoError(s.T(), err)
	_, err = s.svc.UpsertTranslation(&UpsertTranslationRequest{
		Key:      "cancel",
		Category: "buttons",
		English:  "Cancel",
	})
	require.NoError(s.T(), err)

	ta, err := s.svc.Dictionary("ta")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "வாங்கு", ta["buttons.buy"])
	assert.Equal(s.T(), "Cancel", ta["buttons.cancel"])

	en, err := s.svc.Dictionary("en")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "Buy", en["buttons.buy"])
}

func (s *TranslationTestSuite) TestDeleteTranslation() {
	created, err := s.svc.UpsertTranslation(&UpsertTranslationRequest{
		Key:      "buy",
		Category: "buttons",
		English:  "Buy",
	})
	require.NoError(s.T(), err)

	require.NoError(s.T(), s.svc.DeleteTranslation(created.ID))
	assert.ErrorIs(s.T(), s.svc.DeleteTranslation(created.ID), ErrTranslationNotFound)
}
