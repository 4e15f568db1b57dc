package fingerprint

// rules is the built-in detection table. Order matters only for name
// deduplication (first match wins); every rule is always evaluated.
var rules = []Rule{
	// CMS
	{Name: "WordPress", Category: CategoryCMS, BodyPattern: "wp-content"},
	{Name: "WordPress", Category: CategoryCMS, BodyPattern: "wp-json"},
	{Name: "WordPress", Category: CategoryCMS, BodyPattern: "xmlrpc.php"},
	{Name: "Drupal", Category: CategoryCMS, BodyPattern: "/sites/default/files"},
	{Name: "Drupal", Category: CategoryCMS, HeaderKey: "X-Generator", HeaderPattern: "drupal"},
	{Name: "Joomla", Category: CategoryCMS, BodyPattern: "/media/jui/"},
	{Name: "Joomla", Category: CategoryCMS, BodyPattern: "content=\"joomla"},
	{Name: "TYPO3", Category: CategoryCMS, BodyPattern: "typo3temp"},
	{Name: "Ghost", Category: CategoryCMS, BodyPattern: "content=\"ghost"},
	{Name: "Wix", Category: CategoryCMS, BodyPattern: "wix.com"},
	{Name: "Squarespace", Category: CategoryCMS, BodyPattern: "squarespace.com"},
	{Name: "Webflow", Category: CategoryCMS, BodyPattern: "data-wf-site"},
	{Name: "Contentful", Category: CategoryCMS, BodyPattern: "ctfassets.net"},

	// E-commerce
	{Name: "Shopify", Category: CategoryEcommerce, BodyPattern: "cdn.shopify.com"},
	{Name: "Shopify", Category: CategoryEcommerce, HeaderKey: "X-Shopify-Stage"},
	{Name: "WooCommerce", Category: CategoryEcommerce, BodyPattern: "woocommerce"},
	{Name: "Magento", Category: CategoryEcommerce, BodyPattern: "mage-init"},
	{Name: "PrestaShop", Category: CategoryEcommerce, BodyPattern: "prestashop"},

	// Frontend frameworks and libraries
	{Name: "React", Category: CategoryFramework, BodyPattern: "data-reactroot"},
	{Name: "React", Category: CategoryFramework, BodyPattern: "__next_data__"},
	{Name: "Next.js", Category: CategoryFramework, BodyPattern: "/_next/static"},
	{Name: "Next.js", Category: CategoryFramework, HeaderKey: "X-Powered-By", HeaderPattern: "next.js"},
	{Name: "Nuxt", Category: CategoryFramework, BodyPattern: "__nuxt"},
	{Name: "Vue.js", Category: CategoryFramework, BodyPattern: "data-v-app"},
	{Name: "Vue.js", Category: CategoryFramework, BodyPattern: "vue.min.js"},
	{Name: "Angular", Category: CategoryFramework, BodyPattern: "ng-version"},
	{Name: "Svelte", Category: CategoryFramework, BodyPattern: "svelte-"},
	{Name: "Gatsby", Category: CategoryFramework, BodyPattern: "___gatsby"},
	{Name: "jQuery", Category: CategoryJS, BodyPattern: "jquery"},
	{Name: "Bootstrap", Category: CategoryJS, BodyPattern: "bootstrap"},
	{Name: "Tailwind CSS", Category: CategoryJS, BodyPattern: "tailwind"},
	{Name: "Alpine.js", Category: CategoryJS, BodyPattern: "x-data="},
	{Name: "htmx", Category: CategoryJS, BodyPattern: "hx-get"},

	// Backend hints
	{Name: "PHP", Category: CategoryServer, HeaderKey: "X-Powered-By", HeaderPattern: "php"},
	{Name: "ASP.NET", Category: CategoryServer, HeaderKey: "X-Powered-By", HeaderPattern: "asp.net"},
	{Name: "Express", Category: CategoryServer, HeaderKey: "X-Powered-By", HeaderPattern: "express"},
	{Name: "Laravel", Category: CategoryServer, HeaderKey: "Set-Cookie", HeaderPattern: "laravel_session"},
	{Name: "Django", Category: CategoryServer, HeaderKey: "Set-Cookie", HeaderPattern: "csrftoken"},
	{Name: "Ruby on Rails", Category: CategoryServer, HeaderKey: "Set-Cookie", HeaderPattern: "_rails_session"},

	// Servers
	{Name: "Nginx", Category: CategoryServer, HeaderKey: "Server", HeaderPattern: "nginx"},
	{Name: "Apache", Category: CategoryServer, HeaderKey: "Server", HeaderPattern: "apache"},
	{Name: "Microsoft IIS", Category: CategoryServer, HeaderKey: "Server", HeaderPattern: "microsoft-iis"},
	{Name: "LiteSpeed", Category: CategoryServer, HeaderKey: "Server", HeaderPattern: "litespeed"},
	{Name: "Caddy", Category: CategoryServer, HeaderKey: "Server", HeaderPattern: "caddy"},

	// CDN / edge
	{Name: "Cloudflare", Category: CategoryCDN, HeaderKey: "CF-Ray"},
	{Name: "Cloudflare", Category: CategoryCDN, HeaderKey: "Server", HeaderPattern: "cloudflare"},
	{Name: "Fastly", Category: CategoryCDN, HeaderKey: "X-Served-By", HeaderPattern: "cache-"},
	{Name: "Fastly", Category: CategoryCDN, HeaderKey: "Via", HeaderPattern: "fastly"},
	{Name: "Akamai", Category: CategoryCDN, HeaderKey: "X-Akamai-Transformed"},
	{Name: "Amazon CloudFront", Category: CategoryCDN, HeaderKey: "X-Amz-Cf-Id"},
	{Name: "Vercel", Category: CategoryCDN, HeaderKey: "X-Vercel-Id"},
	{Name: "Netlify", Category: CategoryCDN, HeaderKey: "X-Nf-Request-Id"},
	{Name: "Varnish", Category: CategoryCDN, HeaderKey: "X-Varnish"},

	// WAF
	{Name: "Sucuri", Category: CategoryWAF, HeaderKey: "X-Sucuri-Id"},
	{Name: "Imperva Incapsula", Category: CategoryWAF, HeaderKey: "X-Iinfo"},
	{Name: "AWS WAF", Category: CategoryWAF, HeaderKey: "X-Amzn-Waf-Action"},

	// Analytics and tags
	{Name: "Google Analytics", Category: CategoryAnalytics, BodyPattern: "google-analytics.com"},
	{Name: "Google Analytics", Category: CategoryAnalytics, BodyPattern: "gtag("},
	{Name: "Google Tag Manager", Category: CategoryAnalytics, BodyPattern: "googletagmanager.com"},
	{Name: "Matomo", Category: CategoryAnalytics, BodyPattern: "matomo.js"},
	{Name: "Plausible", Category: CategoryAnalytics, BodyPattern: "plausible.io/js"},
	{Name: "Hotjar", Category: CategoryAnalytics, BodyPattern: "static.hotjar.com"},
	{Name: "Facebook Pixel", Category: CategoryAnalytics, BodyPattern: "connect.facebook.net"},
	{Name: "Fathom", Category: CategoryAnalytics, BodyPattern: "usefathom.com"},
}
