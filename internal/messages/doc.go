// Package messages holds the user-facing texts of modtranslator. Texts are
// kept in embedded TOML catalogs and rendered through go-i18n, with Russian
// as the default locale.
package messages
