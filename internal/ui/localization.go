package ui

import (
	"fmt"

	"github.com/ytget/playlist-demo/internal/model"
)

// Localization manages UI text translations
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
}

// Text keys for localization
const (
	KeyAppTitle          = "app_title"
	KeyAnalyze           = "analyze"
	KeyAnalyzing         = "analyzing"
	KeyDownloadAll       = "download_all"
	KeyCancelDownload    = "cancel_download"
	KeyReveal            = "reveal"
	KeyView              = "view"
	KeySettings          = "settings"
	KeyFile              = "file"
	KeyLanguage          = "language"
	KeyDownloadDirectory = "download_directory"
	KeyFailureRate       = "failure_rate"
	KeyTransferDelay     = "transfer_delay"
	KeyAnalyzeDelay      = "analyze_delay"
	KeyRandomSeed        = "random_seed"
	KeyAutoReveal        = "auto_reveal"
	KeySave              = "save"
	KeyCancel            = "cancel"
	KeyClose             = "close"
	KeyBrowse            = "browse"
	KeyEnterURL          = "enter_url"
	KeyFilterVideos      = "filter_videos"
	KeySettingsSaved     = "settings_saved"
	KeyRestartRequired   = "restart_required"
	KeyVideosFound       = "videos_found"
	KeyDownloadingOf     = "downloading_of"
	KeyDownloadingTitle  = "downloading_title"
	KeyAnalyzed          = "analyzed"
	KeyDownloadCompleted = "download_completed"
	KeyDownloadCancelled = "download_cancelled"
	KeyCompletedTitle    = "completed_title"
	KeyCompletedMessage  = "completed_message"
	KeyBlockedTitle      = "blocked_title"
	KeyBlockedMessage    = "blocked_message"
	KeyErrorOpeningFile  = "error_opening_file"
	KeyFileNotAvailable  = "file_not_available"
	KeyStatusPending     = "status_pending"
	KeyStatusDownloading = "status_downloading"
	KeyStatusCompleted   = "status_completed"
	KeyStatusError       = "status_error"
	KeyErrEmptyInput     = "err_empty_input"
	KeyErrInvalidURL     = "err_invalid_url"
	KeyErrNoPlaylistID   = "err_no_playlist_id"
)

var errorKindKeys = map[string]string{
	model.KindEmptyInput:  KeyErrEmptyInput,
	model.KindInvalidURL:  KeyErrInvalidURL,
	model.KindNoPlaylist:  KeyErrNoPlaylistID,
	model.KindSaveBlocked: KeyBlockedMessage,
}

var videoStatusKeys = map[model.VideoStatus]string{
	model.VideoStatusPending:     KeyStatusPending,
	model.VideoStatusDownloading: KeyStatusDownloading,
	model.VideoStatusCompleted:   KeyStatusCompleted,
	model.VideoStatusError:       KeyStatusError,
}

// NewLocalization creates a new localization manager
func NewLocalization() *Localization {
	l := &Localization{
		currentLanguage: "en",
		texts:           make(map[string]map[string]string),
	}

	l.initializeTexts()
	return l
}

// SetLanguage sets the current language. Unknown codes keep the current one.
func (l *Localization) SetLanguage(lang string) {
	if lang == "system" {
		lang = "en"
	}

	if _, exists := l.texts[lang]; exists {
		l.currentLanguage = lang
	}
}

// GetText returns localized text for the given key
func (l *Localization) GetText(key string) string {
	if texts, exists := l.texts[l.currentLanguage]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	if texts, exists := l.texts["en"]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	return key
}

// Format returns the localized format string for key applied to args.
func (l *Localization) Format(key string, args ...any) string {
	return fmt.Sprintf(l.GetText(key), args...)
}

// ErrorText returns the localized message for err, falling back to the
// domain's user message for kinds without a translation.
func (l *Localization) ErrorText(err error) string {
	return l.ErrorKindText(model.ErrorKind(err), model.UserMessage(err))
}

// ErrorKindText returns the localized message for an error kind or fallback
// when the kind has no translation.
func (l *Localization) ErrorKindText(kind, fallback string) string {
	if key, ok := errorKindKeys[kind]; ok {
		return l.GetText(key)
	}
	return fallback
}

// StatusText returns the localized label of a video status.
func (l *Localization) StatusText(status model.VideoStatus) string {
	if key, ok := videoStatusKeys[status]; ok {
		return l.GetText(key)
	}
	return status.String()
}

// GetCurrentLanguage returns the current language code
func (l *Localization) GetCurrentLanguage() string {
	return l.currentLanguage
}

// GetAvailableLanguages returns map of available languages with their display names
func (l *Localization) GetAvailableLanguages() map[string]string {
	return map[string]string{
		"en": "English",
		"ru": "Русский",
		"pt": "Português",
	}
}

func (l *Localization) initializeTexts() {
	l.texts["en"] = map[string]string{
		KeyAppTitle:          "Playlist Downloader Demo",
		KeyAnalyze:           "Analyze",
		KeyAnalyzing:         "Analyzing...",
		KeyDownloadAll:       "Download All",
		KeyCancelDownload:    "Cancel",
		KeyReveal:            "open",
		KeyView:              "view",
		KeySettings:          "Settings",
		KeyFile:              "File",
		KeyLanguage:          "Language",
		KeyDownloadDirectory: "Download Directory",
		KeyFailureRate:       "Blocked Save Rate (%)",
		KeyTransferDelay:     "Transfer Delay (ms, min-max)",
		KeyAnalyzeDelay:      "Analyze Delay (ms)",
		KeyRandomSeed:        "Random Seed (0 = random)",
		KeyAutoReveal:        "Reveal last file when done",
		KeySave:              "Save",
		KeyCancel:            "Cancel",
		KeyClose:             "Close",
		KeyBrowse:            "Browse",
		KeyEnterURL:          "Enter YouTube playlist URL (https://youtube.com/playlist?list=...)",
		KeyFilterVideos:      "Filter videos",
		KeySettingsSaved:     "Settings saved successfully!",
		KeyRestartRequired:   "Timing and fault settings apply after restart.",
		KeyVideosFound:       "%d videos found",
		KeyDownloadingOf:     "Downloading video %d of %d",
		KeyDownloadingTitle:  "Downloading: %s",
		KeyAnalyzed:          "Playlist analyzed successfully!",
		KeyDownloadCompleted: "Playlist download completed!",
		KeyDownloadCancelled: "Download cancelled",
		KeyCompletedTitle:    "Download Complete",
		KeyCompletedMessage:  "All videos from the playlist were processed.",
		KeyBlockedTitle:      "Download Blocked",
		KeyBlockedMessage:    "Your browser blocked the download. Allow downloads for this site and try again.",
		KeyErrorOpeningFile:  "Error opening file",
		KeyFileNotAvailable:  "File not available yet",
		KeyStatusPending:     "Pending",
		KeyStatusDownloading: "Downloading",
		KeyStatusCompleted:   "Completed",
		KeyStatusError:       "Error",
		KeyErrEmptyInput:     "Please enter a YouTube playlist URL",
		KeyErrInvalidURL:     "Please enter a valid YouTube URL",
		KeyErrNoPlaylistID:   "Could not extract playlist ID from URL",
	}

	l.texts["ru"] = map[string]string{
		KeyAppTitle:          "Демо загрузчика плейлистов",
		KeyAnalyze:           "Анализ",
		KeyAnalyzing:         "Анализ...",
		KeyDownloadAll:       "Скачать все",
		KeyCancelDownload:    "Отмена",
		KeyReveal:            "открыть",
		KeyView:              "просмотр",
		KeySettings:          "Настройки",
		KeyFile:              "Файл",
		KeyLanguage:          "Язык",
		KeyDownloadDirectory: "Папка загрузки",
		KeyFailureRate:       "Доля блокировок (%)",
		KeyTransferDelay:     "Задержка передачи (мс, мин-макс)",
		KeyAnalyzeDelay:      "Задержка анализа (мс)",
		KeyRandomSeed:        "Зерно генератора (0 = случайное)",
		KeyAutoReveal:        "Показать последний файл по завершении",
		KeySave:              "Сохранить",
		KeyCancel:            "Отмена",
		KeyClose:             "Закрыть",
		KeyBrowse:            "Обзор",
		KeyEnterURL:          "Введите URL плейлиста YouTube (https://youtube.com/playlist?list=...)",
		KeyFilterVideos:      "Фильтр видео",
		KeySettingsSaved:     "Настройки успешно сохранены!",
		KeyRestartRequired:   "Настройки времени и сбоев применятся после перезапуска.",
		KeyVideosFound:       "Найдено видео: %d",
		KeyDownloadingOf:     "Загрузка видео %d из %d",
		KeyDownloadingTitle:  "Загрузка: %s",
		KeyAnalyzed:          "Плейлист успешно проанализирован!",
		KeyDownloadCompleted: "Загрузка плейлиста завершена!",
		KeyDownloadCancelled: "Загрузка отменена",
		KeyCompletedTitle:    "Загрузка завершена",
		KeyCompletedMessage:  "Все видео из плейлиста обработаны.",
		KeyBlockedTitle:      "Загрузка заблокирована",
		KeyBlockedMessage:    "Браузер заблокировал загрузку. Разрешите загрузки для этого сайта и повторите попытку.",
		KeyErrorOpeningFile:  "Ошибка открытия файла",
		KeyFileNotAvailable:  "Файл ещё недоступен",
		KeyStatusPending:     "Ожидание",
		KeyStatusDownloading: "Загрузка",
		KeyStatusCompleted:   "Готово",
		KeyStatusError:       "Ошибка",
		KeyErrEmptyInput:     "Пожалуйста, введите URL плейлиста YouTube",
		KeyErrInvalidURL:     "Пожалуйста, введите корректный URL YouTube",
		KeyErrNoPlaylistID:   "Не удалось извлечь ID плейлиста из URL",
	}

	l.texts["pt"] = map[string]string{
		KeyAppTitle:          "Demo de Download de Playlist",
		KeyAnalyze:           "Analisar",
		KeyAnalyzing:         "Analisando...",
		KeyDownloadAll:       "Baixar Tudo",
		KeyCancelDownload:    "Cancelar",
		KeyReveal:            "abrir",
		KeyView:              "ver",
		KeySettings:          "Configurações",
		KeyFile:              "Arquivo",
		KeyLanguage:          "Idioma",
		KeyDownloadDirectory: "Diretório de Download",
		KeyFailureRate:       "Taxa de Bloqueio (%)",
		KeyTransferDelay:     "Atraso de Transferência (ms, mín-máx)",
		KeyAnalyzeDelay:      "Atraso de Análise (ms)",
		KeyRandomSeed:        "Semente Aleatória (0 = aleatória)",
		KeyAutoReveal:        "Mostrar último arquivo ao terminar",
		KeySave:              "Salvar",
		KeyCancel:            "Cancelar",
		KeyClose:             "Fechar",
		KeyBrowse:            "Navegar",
		KeyEnterURL:          "Digite URL da playlist do YouTube (https://youtube.com/playlist?list=...)",
		KeyFilterVideos:      "Filtrar vídeos",
		KeySettingsSaved:     "Configurações salvas com sucesso!",
		KeyRestartRequired:   "Configurações de tempo e falhas valem após reiniciar.",
		KeyVideosFound:       "%d vídeos encontrados",
		KeyDownloadingOf:     "Baixando vídeo %d de %d",
		KeyDownloadingTitle:  "Baixando: %s",
		KeyAnalyzed:          "Playlist analisada com sucesso!",
		KeyDownloadCompleted: "Download da playlist concluído!",
		KeyDownloadCancelled: "Download cancelado",
		KeyCompletedTitle:    "Download Concluído",
		KeyCompletedMessage:  "Todos os vídeos da playlist foram processados.",
		KeyBlockedTitle:      "Download Bloqueado",
		KeyBlockedMessage:    "Seu navegador bloqueou o download. Permita downloads para este site e tente novamente.",
		KeyErrorOpeningFile:  "Erro ao abrir arquivo",
		KeyFileNotAvailable:  "Arquivo ainda não disponível",
		KeyStatusPending:     "Pendente",
		KeyStatusDownloading: "Baixando",
		KeyStatusCompleted:   "Concluído",
		KeyStatusError:       "Erro",
		KeyErrEmptyInput:     "Por favor, digite uma URL de playlist do YouTube",
		KeyErrInvalidURL:     "Por favor, digite uma URL válida do YouTube",
		KeyErrNoPlaylistID:   "Não foi possível extrair o ID da playlist da URL",
	}
}
