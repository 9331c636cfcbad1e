package browser

// stealthScript masks the usual automation signatures: the navigator
// webdriver flag, empty plugin/language lists, the missing chrome global and
// the permissions API returning "denied" for notifications under automation.
// It is injected as an init script so it runs before any site script.
const stealthScript = `
// Remove webdriver property
Object.defineProperty(navigator, 'webdriver', {
	get: () => undefined,
});

// Remove automation driver globals
delete window.cdc_adoQpoasnfa76pfcZLmcfl_Array;
delete window.cdc_adoQpoasnfa76pfcZLmcfl_Promise;
delete window.cdc_adoQpoasnfa76pfcZLmcfl_Symbol;

// Fabricate plausible plugin and language lists
Object.defineProperty(navigator, 'plugins', {
	get: () => [1, 2, 3, 4, 5],
});
Object.defineProperty(navigator, 'languages', {
	get: () => ['ko-KR', 'ko', 'en-US', 'en'],
});

// Headless Chromium ships without the chrome global
window.chrome = window.chrome || { runtime: {} };

// Answer notification permission queries deterministically, delegate the rest
const originalQuery = window.navigator.permissions.query;
window.navigator.permissions.query = (parameters) => (
	parameters.name === 'notifications' ?
		Promise.resolve({ state: Notification.permission }) :
		originalQuery(parameters)
);
`
